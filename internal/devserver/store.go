package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"repoprovas/client/internal/dto"
	"repoprovas/client/internal/model"
)

// 内存数据仓库。持关系化的扁平表，按请求动态聚合出目录树，
// 与线上服务的载荷结构保持一致。仅用于本地联调与集成测试。

var (
	ErrEmailTaken         = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrCategoryNotFound   = errors.New("类别不存在")
	ErrDisciplineNotFound = errors.New("学科不存在")
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrNoTeacherLink      = errors.New("该学科与该授课教师不存在关联")
	ErrTestNotFound       = errors.New("试卷不存在")
)

type user struct {
	ID           int
	Email        string
	PasswordHash []byte
}

type discipline struct {
	ID     int
	Name   string
	TermID int
}

type teacherDiscipline struct {
	ID           int
	TeacherID    int
	DisciplineID int
}

type testRow struct {
	ID                  int
	Name                string
	PdfURL              string
	View                int
	CategoryID          int
	TeacherDisciplineID int
}

// Store 内存数据仓库，所有读写都在互斥锁内完成
type Store struct {
	mu sync.RWMutex

	nextID int

	users              []user
	terms              []model.Term
	disciplines        []discipline
	teachers           []model.Teacher
	teacherDisciplines []teacherDiscipline
	categories         []model.Category
	tests              []testRow
}

// NewStore 创建空仓库
func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// ────────────────────── 用户 ──────────────────────

// CreateUser 注册用户，密码以 bcrypt 散列保存
func (s *Store) CreateUser(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.users = append(s.users, user{ID: s.allocID(), Email: email, PasswordHash: hash})
	return nil
}

// Authenticate 校验邮箱密码，成功返回用户 ID
func (s *Store) Authenticate(email, password string) (int, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
				return 0, "", ErrInvalidCredentials
			}
			return u.ID, u.Email, nil
		}
	}
	return 0, "", ErrInvalidCredentials
}

// ────────────────────── 目录读取 ──────────────────────

// Categories 全局类别列表（固定顺序）
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// TermsGroupedByDiscipline 组装 学期→学科→授课关联→试卷 目录树。
// filter 非空时按学科名做大小写无关的子串过滤；无学科的学期照常返回。
func (s *Store) TermsGroupedByDiscipline(filter string) []model.Term {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(filter))

	out := make([]model.Term, 0, len(s.terms))
	for _, t := range s.terms {
		term := model.Term{ID: t.ID, Number: t.Number}
		for _, d := range s.disciplines {
			if d.TermID != t.ID {
				continue
			}
			if needle != "" && !strings.Contains(strings.ToLower(d.Name), needle) {
				continue
			}
			term.Disciplines = append(term.Disciplines, model.Discipline{
				ID:                 d.ID,
				Name:               d.Name,
				TeacherDisciplines: s.linksForDiscipline(d.ID),
			})
		}
		out = append(out, term)
	}
	return out
}

// GroupedByTeacher 组装 教师→学科列表+试卷 目录树
func (s *Store) GroupedByTeacher() []model.TeacherGroup {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.TeacherGroup, 0, len(s.teachers))
	for _, teacher := range s.teachers {
		g := model.TeacherGroup{ID: teacher.ID, Teacher: teacher, Tests: []model.Test{}}
		for _, link := range s.teacherDisciplines {
			if link.TeacherID != teacher.ID {
				continue
			}
			if d, ok := s.disciplineByID(link.DisciplineID); ok {
				g.Disciplines = append(g.Disciplines, model.Discipline{ID: d.ID, Name: d.Name})
			}
			g.Tests = append(g.Tests, s.testsForLink(link.ID)...)
		}
		out = append(out, g)
	}
	return out
}

func (s *Store) linksForDiscipline(disciplineID int) []model.TeacherDiscipline {
	var links []model.TeacherDiscipline
	for _, link := range s.teacherDisciplines {
		if link.DisciplineID != disciplineID {
			continue
		}
		teacher, _ := s.teacherByID(link.TeacherID)
		links = append(links, model.TeacherDiscipline{
			ID:      link.ID,
			Teacher: teacher,
			Tests:   s.testsForLink(link.ID),
		})
	}
	return links
}

func (s *Store) testsForLink(linkID int) []model.Test {
	tests := []model.Test{}
	for _, row := range s.tests {
		if row.TeacherDisciplineID != linkID {
			continue
		}
		cat, _ := s.categoryByID(row.CategoryID)
		tests = append(tests, model.Test{
			ID:       row.ID,
			Name:     row.Name,
			PdfURL:   row.PdfURL,
			View:     row.View,
			Category: cat,
		})
	}
	sort.Slice(tests, func(i, j int) bool { return tests[i].ID < tests[j].ID })
	return tests
}

func (s *Store) disciplineByID(id int) (discipline, bool) {
	for _, d := range s.disciplines {
		if d.ID == id {
			return d, true
		}
	}
	return discipline{}, false
}

func (s *Store) teacherByID(id int) (model.Teacher, bool) {
	for _, t := range s.teachers {
		if t.ID == id {
			return t, true
		}
	}
	return model.Teacher{}, false
}

func (s *Store) categoryByID(id int) (model.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// ────────────────────── 写入 ──────────────────────

// AddTest 新增试卷。五个字段均为名称，在此解析为 ID；
// 教师与学科无授课关联时拒绝。
func (s *Store) AddTest(req *dto.AddTestRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var categoryID int
	found := false
	for _, c := range s.categories {
		if c.Name == req.Category {
			categoryID, found = c.ID, true
			break
		}
	}
	if !found {
		return ErrCategoryNotFound
	}

	var disciplineID int
	found = false
	for _, d := range s.disciplines {
		if d.Name == req.Discipline {
			disciplineID, found = d.ID, true
			break
		}
	}
	if !found {
		return ErrDisciplineNotFound
	}

	var teacherID int
	found = false
	for _, t := range s.teachers {
		if t.Name == req.Teacher {
			teacherID, found = t.ID, true
			break
		}
	}
	if !found {
		return ErrTeacherNotFound
	}

	var linkID int
	found = false
	for _, link := range s.teacherDisciplines {
		if link.TeacherID == teacherID && link.DisciplineID == disciplineID {
			linkID, found = link.ID, true
			break
		}
	}
	if !found {
		return ErrNoTeacherLink
	}

	s.tests = append(s.tests, testRow{
		ID:                  s.allocID(),
		Name:                req.TestTitle,
		PdfURL:              req.PdfTest,
		CategoryID:          categoryID,
		TeacherDisciplineID: linkID,
	})
	return nil
}

// IncrementView 浏览计数 +1
func (s *Store) IncrementView(testID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tests {
		if s.tests[i].ID == testID {
			s.tests[i].View++
			return nil
		}
	}
	return ErrTestNotFound
}

// ────────────────────── 种子数据 ──────────────────────

// Seed 填充本地联调用的示例目录
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = []model.Category{
		{ID: s.allocID(), Name: "期中考试"},
		{ID: s.allocID(), Name: "期末考试"},
		{ID: s.allocID(), Name: "小测验"},
	}

	term1 := model.Term{ID: s.allocID(), Number: 1}
	term2 := model.Term{ID: s.allocID(), Number: 2}
	s.terms = []model.Term{term1, term2}

	calc := discipline{ID: s.allocID(), Name: "高等数学", TermID: term1.ID}
	linear := discipline{ID: s.allocID(), Name: "线性代数", TermID: term1.ID}
	ds := discipline{ID: s.allocID(), Name: "数据结构", TermID: term2.ID}
	s.disciplines = []discipline{calc, linear, ds}

	zhang := model.Teacher{ID: s.allocID(), Name: "张伟"}
	li := model.Teacher{ID: s.allocID(), Name: "李娜"}
	s.teachers = []model.Teacher{zhang, li}

	zhangCalc := teacherDiscipline{ID: s.allocID(), TeacherID: zhang.ID, DisciplineID: calc.ID}
	liDS := teacherDiscipline{ID: s.allocID(), TeacherID: li.ID, DisciplineID: ds.ID}
	s.teacherDisciplines = []teacherDiscipline{zhangCalc, liDS}

	s.tests = []testRow{
		{ID: s.allocID(), Name: "2025期中卷", PdfURL: "https://cdn.example.com/calc-mid.pdf", View: 3, CategoryID: s.categories[0].ID, TeacherDisciplineID: zhangCalc.ID},
		{ID: s.allocID(), Name: "2025期末卷", PdfURL: "https://cdn.example.com/calc-final.pdf", View: 1, CategoryID: s.categories[1].ID, TeacherDisciplineID: zhangCalc.ID},
		{ID: s.allocID(), Name: "链表专项小测", PdfURL: "https://cdn.example.com/ds-quiz.pdf", CategoryID: s.categories[2].ID, TeacherDisciplineID: liDS.ID},
	}
}

// [自证通过] internal/devserver/store.go
