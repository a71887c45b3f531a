// Package handler 提供HTTP请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/notedrop/notedrop/internal/errors"
	"github.com/notedrop/notedrop/internal/logger"
)

// APIResponse 统一的API响应结构
type APIResponse struct {
	// 请求是否成功
	Success bool `json:"success"`
	// 响应消息
	Message string `json:"message,omitempty"`
	// 响应数据
	Data interface{} `json:"data,omitempty"`
	// 错误信息
	Error *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload 错误响应的详细信息
type ErrorPayload struct {
	// 错误码
	Code apperrors.ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
}

// respondOK 返回成功响应
func respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// respondCreated 返回创建成功响应
func respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// respondError 根据应用错误码返回对应的HTTP状态
// 非AppError的错误一律按服务器内部错误处理，不向客户端泄露细节
func respondError(c *gin.Context, err error) {
	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		logger.Errorf("Unhandled error: %v", err)
		appErr = apperrors.ErrInternalServerError
	}

	c.JSON(httpStatus(appErr.Code), APIResponse{
		Success: false,
		Error: &ErrorPayload{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

// httpStatus 错误码到HTTP状态码的映射
func httpStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrInvalidParams, apperrors.ErrNoteTitleRequired, apperrors.ErrTagNameRequired:
		return http.StatusBadRequest
	case apperrors.ErrUnauthorized, apperrors.ErrAuthTokenMissing, apperrors.ErrAuthTokenInvalid,
		apperrors.ErrAuthTokenExpired, apperrors.ErrAuthClaimsIncomplete, apperrors.ErrAuthRefreshInvalid:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden, apperrors.ErrAuthLoginDisabled:
		return http.StatusForbidden
	case apperrors.ErrNotFound, apperrors.ErrNoteNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
