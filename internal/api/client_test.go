package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"repoprovas/client/config"
	"repoprovas/client/internal/dto"
)

// ── 测试辅助 ──

func newTestClient(srvURL string) Client {
	cfg := &config.APIConfig{BaseURL: srvURL, Timeout: 5 * time.Second}
	return NewClient(cfg, zap.NewNop())
}

// ── 认证 ──

func TestClient_SignIn_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/sign-in" {
			t.Errorf("非预期请求: %s %s", r.Method, r.URL.Path)
		}
		var req dto.SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("解析请求体失败: %v", err)
		}
		if req.Email != "aluno@driven.com.br" {
			t.Errorf("期望email=aluno@driven.com.br，实际=%s", req.Email)
		}
		json.NewEncoder(w).Encode(dto.TokenResponse{Token: "tok-123"})
	}))
	defer srv.Close()

	token, err := newTestClient(srv.URL).SignIn(context.Background(), "aluno@driven.com.br", "senha123")
	if err != nil {
		t.Fatalf("SignIn 应成功: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("期望token=tok-123，实际=%s", token)
	}
}

// ── 令牌注入 ──

func TestClient_TestsByDiscipline_BearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("期望 Authorization=Bearer tok-123，实际=%s", got)
		}
		if r.URL.Query().Get("groupBy") != "disciplines" {
			t.Errorf("期望 groupBy=disciplines，实际=%s", r.URL.Query().Get("groupBy"))
		}
		w.Write([]byte(`{"tests":[{"id":1,"number":1,"disciplines":[]}]}`))
	}))
	defer srv.Close()

	terms, err := newTestClient(srv.URL).TestsByDiscipline(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("TestsByDiscipline 应成功: %v", err)
	}
	if len(terms) != 1 || terms[0].Number != 1 {
		t.Errorf("期望 1 个学期，实际=%+v", terms)
	}
}

// 令牌为空时必须跳过请求而不是发送
func TestClient_TokenMissing_NoRequest(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx := context.Background()

	if _, err := c.TestsByDiscipline(ctx, ""); err != ErrTokenMissing {
		t.Errorf("期望 ErrTokenMissing，实际: %v", err)
	}
	if _, err := c.Categories(ctx, ""); err != ErrTokenMissing {
		t.Errorf("期望 ErrTokenMissing，实际: %v", err)
	}
	if err := c.AddTest(ctx, "", &dto.AddTestRequest{}); err != ErrTokenMissing {
		t.Errorf("期望 ErrTokenMissing，实际: %v", err)
	}
	if requests != 0 {
		t.Errorf("令牌缺失时不应发出任何请求，实际发出 %d 次", requests)
	}
}

// ── 检索 ──

func TestClient_TestsByDisciplineName_EmptyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if _, ok := q["findBy"]; !ok {
			t.Error("空查询也应携带 findBy 参数")
		}
		if q.Get("findBy") != "" {
			t.Errorf("期望 findBy 为空串，实际=%s", q.Get("findBy"))
		}
		w.Write([]byte(`{"tests":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).TestsByDisciplineName(context.Background(), "tok", ""); err != nil {
		t.Fatalf("空查询应被接受: %v", err)
	}
}

func TestClient_TestsByDisciplineName_QueryEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("findBy"); got != "数据 结构" {
			t.Errorf("期望 findBy=数据 结构，实际=%s", got)
		}
		w.Write([]byte(`{"tests":[]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).TestsByDisciplineName(context.Background(), "tok", "数据 结构"); err != nil {
		t.Fatalf("TestsByDisciplineName 应成功: %v", err)
	}
}

// ── 写入 ──

// 提交的五个字段必须原样送达
func TestClient_AddTest_SendsLiteralValues(t *testing.T) {
	var got dto.AddTestRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/add-test" {
			t.Errorf("非预期路径: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("解析请求体失败: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	req := &dto.AddTestRequest{
		TestTitle:  "2026期中卷",
		PdfTest:    "https://example.com/p1.pdf",
		Category:   "期中考试",
		Discipline: "高等数学",
		Teacher:    "张伟",
	}
	if err := newTestClient(srv.URL).AddTest(context.Background(), "tok", req); err != nil {
		t.Fatalf("AddTest 应成功: %v", err)
	}
	if got != *req {
		t.Errorf("字段未原样送达: %+v", got)
	}
}

func TestClient_PostView_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.ViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("解析请求体失败: %v", err)
		}
		if req.ID != 5 {
			t.Errorf("期望id=5，实际=%d", req.ID)
		}
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).PostView(context.Background(), "tok", 5); err != nil {
		t.Fatalf("PostView 应成功: %v", err)
	}
}

// ── 错误归类 ──

// 非 2xx 的消息体必须原样传出
func TestClient_ResponseError_MessageVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "学科不存在", http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).AddTest(context.Background(), "tok", &dto.AddTestRequest{})
	respErr, ok := err.(*ResponseError)
	if !ok {
		t.Fatalf("期望 ResponseError，实际: %v", err)
	}
	if respErr.StatusCode != http.StatusNotFound {
		t.Errorf("期望状态码404，实际=%d", respErr.StatusCode)
	}
	if respErr.Message != "学科不存在" {
		t.Errorf("消息应原样传出，实际=%q", respErr.Message)
	}
}

func TestClient_Unauthorized_IsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token 无效或已过期", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).TestsByDiscipline(context.Background(), "expired")
	if !IsAuthError(err) {
		t.Errorf("401 应判定为认证错误，实际: %v", err)
	}
}

func TestClient_TransportError_RetryMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关闭，制造连接失败

	_, err := newTestClient(srv.URL).TestsByDiscipline(context.Background(), "tok")
	if _, ok := err.(*TransportError); !ok {
		t.Fatalf("期望 TransportError，实际: %v", err)
	}
	if UserMessage(err) != RetryMessage {
		t.Errorf("传输失败应展示通用重试提示，实际=%q", UserMessage(err))
	}
}
