package service

import (
	"context"
	"sync"

	"repoprovas/client/internal/api"
	"repoprovas/client/internal/dto"
	"repoprovas/client/internal/model"
)

// ── Mock api.Client ──
//
// 服务层测试共用的手写 Mock，行为可按测试逐项注入。

type mockAPI struct {
	mu sync.Mutex

	terms         []model.Term
	teacherGroups []model.TeacherGroup
	categories    []model.Category

	termsErr      error
	categoriesErr error
	teacherErr    error
	addTestErr    error
	viewErr       error

	// searchHook 非 nil 时接管按名检索，用于模拟响应时序
	searchHook func(name string) ([]model.Term, error)

	addTests []dto.AddTestRequest
	views    []int
	calls    map[string]int
}

func newMockAPI() *mockAPI {
	return &mockAPI{calls: make(map[string]int)}
}

func (m *mockAPI) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
}

func (m *mockAPI) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockAPI) SignUp(_ context.Context, _, _ string) error {
	m.record("SignUp")
	return nil
}

func (m *mockAPI) SignIn(_ context.Context, _, _ string) (string, error) {
	m.record("SignIn")
	return "tok-test", nil
}

func (m *mockAPI) TestsByDiscipline(_ context.Context, token string) ([]model.Term, error) {
	if token == "" {
		return nil, api.ErrTokenMissing
	}
	m.record("TestsByDiscipline")
	if m.termsErr != nil {
		return nil, m.termsErr
	}
	return m.terms, nil
}

func (m *mockAPI) TestsByDisciplineName(_ context.Context, token, name string) ([]model.Term, error) {
	if token == "" {
		return nil, api.ErrTokenMissing
	}
	m.record("TestsByDisciplineName")
	if m.searchHook != nil {
		return m.searchHook(name)
	}
	if m.termsErr != nil {
		return nil, m.termsErr
	}
	return m.terms, nil
}

func (m *mockAPI) TestsByTeacher(_ context.Context, token string) ([]model.TeacherGroup, error) {
	if token == "" {
		return nil, api.ErrTokenMissing
	}
	m.record("TestsByTeacher")
	if m.teacherErr != nil {
		return nil, m.teacherErr
	}
	return m.teacherGroups, nil
}

func (m *mockAPI) Categories(_ context.Context, token string) ([]model.Category, error) {
	if token == "" {
		return nil, api.ErrTokenMissing
	}
	m.record("Categories")
	if m.categoriesErr != nil {
		return nil, m.categoriesErr
	}
	return m.categories, nil
}

func (m *mockAPI) AddTest(_ context.Context, token string, req *dto.AddTestRequest) error {
	if token == "" {
		return api.ErrTokenMissing
	}
	m.record("AddTest")
	if m.addTestErr != nil {
		return m.addTestErr
	}
	m.mu.Lock()
	m.addTests = append(m.addTests, *req)
	m.mu.Unlock()
	return nil
}

func (m *mockAPI) PostView(_ context.Context, token string, testID int) error {
	if token == "" {
		return api.ErrTokenMissing
	}
	m.record("PostView")
	if m.viewErr != nil {
		return m.viewErr
	}
	m.mu.Lock()
	m.views = append(m.views, testID)
	m.mu.Unlock()
	return nil
}

// ── 共用测试数据 ──

func sampleCategories() []model.Category {
	return []model.Category{
		{ID: 1, Name: "期中考试"},
		{ID: 2, Name: "期末考试"},
		{ID: 3, Name: "小测验"},
	}
}

func sampleTerms() []model.Term {
	return []model.Term{
		{
			ID: 1, Number: 1,
			Disciplines: []model.Discipline{
				{
					ID: 11, Name: "高等数学",
					TeacherDisciplines: []model.TeacherDiscipline{
						{
							ID:      101,
							Teacher: model.Teacher{ID: 7, Name: "张伟"},
							Tests: []model.Test{
								{ID: 1001, Name: "2025期中卷", PdfURL: "https://cdn.example.com/1001.pdf", View: 4, Category: model.Category{ID: 1, Name: "期中考试"}},
								{ID: 1002, Name: "2025期末卷", PdfURL: "https://cdn.example.com/1002.pdf", View: 9, Category: model.Category{ID: 2, Name: "期末考试"}},
							},
						},
					},
				},
				{ID: 12, Name: "线性代数"},
			},
		},
	}
}
