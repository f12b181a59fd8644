package database

import "errors"

// ErrKind 错误类别，控制器根据类别映射HTTP状态码
type ErrKind string

const (
	ErrKindValidation ErrKind = "validation" // 参数错误 -> 400
	ErrKindNotFound   ErrKind = "not_found"  // 资源不存在或无权访问 -> 404
	ErrKindForbidden  ErrKind = "forbidden"  // 已认证但非资源所有者 -> 403
)

// AppError 业务错误，携带用户可见消息和机器可读类别
type AppError struct {
	Kind    ErrKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError 创建参数校验错误
func NewValidationError(message string) *AppError {
	return &AppError{Kind: ErrKindValidation, Message: message}
}

// NewNotFoundError 创建资源不存在错误
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrKindNotFound, Message: message}
}

// NewForbiddenError 创建无权操作错误
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrKindForbidden, Message: message}
}

// IsKind 判断错误是否属于指定类别
func IsKind(err error, kind ErrKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
