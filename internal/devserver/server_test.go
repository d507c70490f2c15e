package devserver

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"repoprovas/client/config"
	"repoprovas/client/internal/api"
	"repoprovas/client/internal/dto"
	"repoprovas/client/pkg/jwt"
)

// 端到端联调：真实 HTTP 客户端打到内存开发服务器，
// 覆盖 注册→登录→浏览→检索→提交→计数 全链路。

func setupServer(t *testing.T) (api.Client, func()) {
	t.Helper()

	cfg := &config.Config{
		DevServer: config.DevServerConfig{
			Port: 5000,
			CORS: config.CORSConfig{AllowOrigins: []string{"http://localhost:3000"}},
		},
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}

	store := NewStore()
	store.Seed()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	h := NewHandler(store, jwtMgr, zap.NewNop())
	ts := httptest.NewServer(Setup(cfg, h, jwtMgr, zap.NewNop()))

	client := api.NewClient(&config.APIConfig{
		BaseURL: ts.URL,
		Timeout: 5 * time.Second,
	}, zap.NewNop())

	return client, ts.Close
}

func signIn(t *testing.T, client api.Client) string {
	t.Helper()
	ctx := context.Background()

	if err := client.SignUp(ctx, "student@example.com", "secret123"); err != nil {
		t.Fatalf("注册应成功: %v", err)
	}
	token, err := client.SignIn(ctx, "student@example.com", "secret123")
	if err != nil {
		t.Fatalf("登录应成功: %v", err)
	}
	if token == "" {
		t.Fatal("登录应返回非空令牌")
	}
	return token
}

func TestServer_AuthFlow(t *testing.T) {
	client, teardown := setupServer(t)
	defer teardown()
	ctx := context.Background()

	token := signIn(t, client)

	// 重复注册冲突，消息原样透传
	err := client.SignUp(ctx, "student@example.com", "other456")
	var respErr *api.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode != 409 {
		t.Fatalf("期望 409 冲突，实际: %v", err)
	}
	if respErr.Message != "该邮箱已被注册" {
		t.Errorf("冲突消息应原样透传，实际=%q", respErr.Message)
	}

	// 密码错误 → 认证类错误
	_, err = client.SignIn(ctx, "student@example.com", "wrong")
	if !api.IsAuthError(err) {
		t.Errorf("密码错误应判定为认证错误，实际: %v", err)
	}

	// 伪造令牌访问受保护接口 → 认证类错误；真令牌放行
	_, err = client.TestsByDiscipline(ctx, "not-a-jwt")
	if !api.IsAuthError(err) {
		t.Errorf("伪造令牌应判定为认证错误，实际: %v", err)
	}
	if _, err = client.TestsByDiscipline(ctx, token); err != nil {
		t.Errorf("有效令牌应放行: %v", err)
	}
}

func TestServer_CatalogAndSearch(t *testing.T) {
	client, teardown := setupServer(t)
	defer teardown()
	ctx := context.Background()
	token := signIn(t, client)

	terms, err := client.TestsByDiscipline(ctx, token)
	if err != nil {
		t.Fatalf("读取目录应成功: %v", err)
	}
	if len(terms) != 2 {
		t.Fatalf("期望 2 个学期，实际=%d", len(terms))
	}

	categories, err := client.Categories(ctx, token)
	if err != nil {
		t.Fatalf("读取类别应成功: %v", err)
	}
	if len(categories) != 3 {
		t.Errorf("期望 3 个类别，实际=%d", len(categories))
	}

	// 按学科名检索
	terms, err = client.TestsByDisciplineName(ctx, token, "数学")
	if err != nil {
		t.Fatalf("检索应成功: %v", err)
	}
	var names []string
	for _, term := range terms {
		for _, d := range term.Disciplines {
			names = append(names, d.Name)
		}
	}
	if len(names) != 1 || names[0] != "高等数学" {
		t.Errorf("检索结果异常: %v", names)
	}

	// 按教师分组
	groups, err := client.TestsByTeacher(ctx, token)
	if err != nil {
		t.Fatalf("教师分组应成功: %v", err)
	}
	if len(groups) != 2 || groups[0].Teacher.Name != "张伟" {
		t.Errorf("教师分组异常: %+v", groups)
	}
}

func TestServer_AddTestAndView(t *testing.T) {
	client, teardown := setupServer(t)
	defer teardown()
	ctx := context.Background()
	token := signIn(t, client)

	// 无授课关联被拒，消息原样透传
	err := client.AddTest(ctx, token, &dto.AddTestRequest{
		TestTitle: "偷懒卷", PdfTest: "https://cdn.example.com/x.pdf",
		Category: "期中考试", Discipline: "高等数学", Teacher: "李娜",
	})
	var respErr *api.ResponseError
	if !errors.As(err, &respErr) || respErr.Message != "该学科与该授课教师不存在关联" {
		t.Fatalf("期望关联缺失错误原样透传，实际: %v", err)
	}

	// 正常提交后出现在目录里
	err = client.AddTest(ctx, token, &dto.AddTestRequest{
		TestTitle: "2026期中卷", PdfTest: "https://cdn.example.com/new.pdf",
		Category: "期中考试", Discipline: "高等数学", Teacher: "张伟",
	})
	if err != nil {
		t.Fatalf("提交应成功: %v", err)
	}

	terms, err := client.TestsByDisciplineName(ctx, token, "高等数学")
	if err != nil {
		t.Fatalf("读取目录应成功: %v", err)
	}
	var added *int
	for _, test := range terms[0].Disciplines[0].TeacherDisciplines[0].Tests {
		if test.Name == "2026期中卷" {
			id := test.ID
			added = &id
			if test.View != 0 {
				t.Errorf("新试卷计数应为 0，实际=%d", test.View)
			}
		}
	}
	if added == nil {
		t.Fatal("新试卷未出现在目录中")
	}

	// 浏览计数 +1
	if err := client.PostView(ctx, token, *added); err != nil {
		t.Fatalf("上报浏览应成功: %v", err)
	}
	terms, _ = client.TestsByDisciplineName(ctx, token, "高等数学")
	for _, test := range terms[0].Disciplines[0].TeacherDisciplines[0].Tests {
		if test.ID == *added && test.View != 1 {
			t.Errorf("期望计数=1，实际=%d", test.View)
		}
	}
}
