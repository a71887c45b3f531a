// Package errors 定义应用程序统一的错误码和错误类型
// 错误消息通过i18n包按语言解析
package errors

import (
	"fmt"

	"github.com/notedrop/notedrop/internal/i18n"
)

// ErrorCode 错误码类型
type ErrorCode int

// 定义错误码常量
const (
	// 通用错误码 (1000-1999)
	ErrSuccess        ErrorCode = 0    // 成功
	ErrInternalServer ErrorCode = 1000 // 服务器内部错误
	ErrInvalidParams  ErrorCode = 1001 // 参数错误
	ErrUnauthorized   ErrorCode = 1002 // 未授权
	ErrForbidden      ErrorCode = 1003 // 禁止访问
	ErrNotFound       ErrorCode = 1004 // 资源未找到

	// 认证相关错误码 (2000-2999)
	ErrAuthTokenMissing     ErrorCode = 2000 // 未提供认证令牌
	ErrAuthTokenInvalid     ErrorCode = 2001 // 认证令牌无效
	ErrAuthTokenExpired     ErrorCode = 2002 // 认证令牌已过期
	ErrAuthClaimsIncomplete ErrorCode = 2003 // 令牌缺少必要身份信息
	ErrAuthRefreshInvalid   ErrorCode = 2004 // 刷新令牌无效
	ErrAuthLoginDisabled    ErrorCode = 2005 // 登录接口未启用

	// 笔记/标签相关错误码 (3000-3999)
	ErrNoteTitleRequired ErrorCode = 3000 // 笔记标题不能为空
	ErrNoteNotFound      ErrorCode = 3001 // 笔记未找到
	ErrTagNameRequired   ErrorCode = 3002 // 标签名称不能为空

	// 数据库相关错误码 (4000-4999)
	ErrDatabaseQuery       ErrorCode = 4001 // 数据库查询错误
	ErrDatabaseInsert      ErrorCode = 4002 // 数据库插入错误
	ErrDatabaseUpdate      ErrorCode = 4003 // 数据库更新错误
	ErrDatabaseDelete      ErrorCode = 4004 // 数据库删除错误
	ErrDatabaseTransaction ErrorCode = 4005 // 数据库事务错误
)

// AppError 应用错误结构体
type AppError struct {
	// 错误码
	Code ErrorCode `json:"code"`
	// 错误消息
	Message string `json:"message"`
	// 详细错误信息
	Details string `json:"details,omitempty"`
	// 原始错误
	OriginalError error `json:"-"`
}

// Error 实现error接口
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%d] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 返回原始错误，支持errors.Is/As链
func (e *AppError) Unwrap() error {
	return e.OriginalError
}

// WithDetails 添加详细错误信息
func (e *AppError) WithDetails(details string) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 将原始错误包装为应用错误
func Wrap(code ErrorCode, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		OriginalError: err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// GetAppError 从错误中提取应用错误
func GetAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// 预定义的常用错误
var (
	ErrInternalServerError = New(ErrInternalServer, GetErrorMessage(ErrInternalServer))
	ErrInvalidParameters   = New(ErrInvalidParams, GetErrorMessage(ErrInvalidParams))
	ErrUnauthorizedAccess  = New(ErrUnauthorized, GetErrorMessage(ErrUnauthorized))
	ErrResourceNotFound    = New(ErrNotFound, GetErrorMessage(ErrNotFound))

	ErrAuthTokenMissingError     = New(ErrAuthTokenMissing, GetErrorMessage(ErrAuthTokenMissing))
	ErrAuthTokenInvalidError     = New(ErrAuthTokenInvalid, GetErrorMessage(ErrAuthTokenInvalid))
	ErrAuthTokenExpiredError     = New(ErrAuthTokenExpired, GetErrorMessage(ErrAuthTokenExpired))
	ErrAuthClaimsIncompleteError = New(ErrAuthClaimsIncomplete, GetErrorMessage(ErrAuthClaimsIncomplete))
	ErrAuthRefreshInvalidError   = New(ErrAuthRefreshInvalid, GetErrorMessage(ErrAuthRefreshInvalid))
	ErrAuthLoginDisabledError    = New(ErrAuthLoginDisabled, GetErrorMessage(ErrAuthLoginDisabled))

	ErrNoteTitleRequiredError = New(ErrNoteTitleRequired, GetErrorMessage(ErrNoteTitleRequired))
	ErrNoteNotFoundError      = New(ErrNoteNotFound, GetErrorMessage(ErrNoteNotFound))
	ErrTagNameRequiredError   = New(ErrTagNameRequired, GetErrorMessage(ErrTagNameRequired))
)

// 错误码到i18n键的映射
var errorCodeToKeyMap = map[ErrorCode]string{
	ErrSuccess:        "success",
	ErrInternalServer: "internal_server_error",
	ErrInvalidParams:  "invalid_params",
	ErrUnauthorized:   "unauthorized",
	ErrForbidden:      "forbidden",
	ErrNotFound:       "not_found",

	ErrAuthTokenMissing:     "auth_token_missing",
	ErrAuthTokenInvalid:     "auth_token_invalid",
	ErrAuthTokenExpired:     "auth_token_expired",
	ErrAuthClaimsIncomplete: "auth_claims_incomplete",
	ErrAuthRefreshInvalid:   "auth_refresh_invalid",
	ErrAuthLoginDisabled:    "auth_login_disabled",

	ErrNoteTitleRequired: "note_title_required",
	ErrNoteNotFound:      "note_not_found",
	ErrTagNameRequired:   "tag_name_required",

	ErrDatabaseQuery:       "database_query",
	ErrDatabaseInsert:      "database_insert",
	ErrDatabaseUpdate:      "database_update",
	ErrDatabaseDelete:      "database_delete",
	ErrDatabaseTransaction: "database_transaction",
}

// GetErrorMessage 根据错误码获取错误消息（使用默认语言）
func GetErrorMessage(code ErrorCode) string {
	return GetErrorMessageWithLang(code, i18n.GetInstance().GetDefaultLanguage())
}

// GetErrorMessageWithLang 根据错误码和语言获取错误消息
func GetErrorMessageWithLang(code ErrorCode, lang string) string {
	key, exists := errorCodeToKeyMap[code]
	if !exists {
		key = "unknown_error"
	}
	return i18n.GetInstance().Translate(key, lang)
}
