// Package errors 提供带调用栈的错误包装与多错误聚合。
// 调用方统一使用本包而不是标准库 errors，保证致命错误在 debug 日志中可以打印出完整调用栈。
package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New 创建一个携带调用栈的新错误。
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf 按格式创建错误并附加调用栈，支持 %w 包装。
func Errorf(message string, args ...any) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace 为已有错误附加调用栈；err 为 nil 时返回 nil。
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix 在附加调用栈的同时给错误信息加上前缀。
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// Is 透传标准库 errors.Is。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As 透传标准库 errors.As。
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ErrorStack 返回错误信息与调用栈，用于 debug 级别输出。
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}

	return goError(err).ErrorStack()
}

func goError(err error) *goerrors.Error {
	goerr := &goerrors.Error{Err: err}

	for {
		if wrapped := new(goerrors.Error); errors.As(err, &wrapped) {
			goerr = wrapped
		}

		if err = errors.Unwrap(err); err == nil {
			break
		}
	}

	return goerr
}
