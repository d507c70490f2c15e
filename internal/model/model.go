package model

// 目录树实体，字段名与 RepoProvas 服务端 JSON 载荷一一对应。
// 所有实体对客户端只读，视图计数仅由服务端递增。

// Term 学期（按序号排列的教学周期）
type Term struct {
	ID     int `json:"id"`
	Number int `json:"number"`
	// Disciplines 仅在 groupBy=disciplines 载荷中出现，顺序为服务端给定顺序
	Disciplines []Discipline `json:"disciplines,omitempty"`
}

// Discipline 学科，归属于唯一学期
type Discipline struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// TeacherDisciplines 学科下的授课关联（试卷经由该关联可达）
	TeacherDisciplines []TeacherDiscipline `json:"teacherDisciplines,omitempty"`
}

// TeacherDiscipline 授课关联：一位教师与一门学科的配对
type TeacherDiscipline struct {
	ID      int     `json:"id"`
	Teacher Teacher `json:"teacher"`
	Tests   []Test  `json:"tests"`
}

// Teacher 授课教师，不可变引用数据
type Teacher struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category 试卷类别，全局列表，独立于学期与学科
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Test 试卷。View 为单调不减的浏览计数，客户端从不乐观更新
type Test struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	PdfURL   string   `json:"pdfUrl"`
	View     int      `json:"view"`
	Category Category `json:"category"`
}

// TeacherGroup groupBy=teachers 载荷中的条目：
// 以教师为根，携带其授课学科与全部试卷
type TeacherGroup struct {
	ID          int          `json:"id"`
	Teacher     Teacher      `json:"teacher"`
	Disciplines []Discipline `json:"disciplines,omitempty"`
	Tests       []Test       `json:"tests"`
}
