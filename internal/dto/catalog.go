package dto

import "fmt"

// 聚合后的展示模型：由 CatalogService 的纯派生逻辑产出，
// 渲染层（终端 / Excel）只做逐层遍历，不再包含任何分支判断。

// TermView 学期节点
type TermView struct {
	ID          int              `json:"id"`
	Number      int              `json:"number"`
	Disciplines []DisciplineView `json:"disciplines"`
}

// DisciplineView 学科节点。
// HasTests 为 false 时该节点是终态占位（"暂无试卷"），Categories 必为空。
type DisciplineView struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	HasTests   bool            `json:"hasTests"`
	Categories []CategoryGroup `json:"categories,omitempty"`
}

// CategoryGroup 类别分组，按全局类别列表顺序输出
type CategoryGroup struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Tests []TestLine `json:"tests"`
}

// TestLine 单条试卷展示行
type TestLine struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	PdfURL  string `json:"pdfUrl"`
	Teacher string `json:"teacher"`
	Views   int    `json:"views"`
}

// Label 试卷行的展示文本，例如 "P1 (Dr. A) (3 views)"
func (l TestLine) Label() string {
	return fmt.Sprintf("%s (%s) (%d views)", l.Name, l.Teacher, l.Views)
}

// TeacherView 教师节点（groupBy=teachers 视图）
type TeacherView struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Disciplines []string        `json:"disciplines,omitempty"`
	HasTests    bool            `json:"hasTests"`
	Categories  []CategoryGroup `json:"categories,omitempty"`
}
