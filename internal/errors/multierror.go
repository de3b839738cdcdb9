package errors

import (
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MultiError 聚合多个互不相关的错误，例如批量扫描中的单文件读取失败。
type MultiError struct {
	inner *multierror.Error
}

// Error 按行输出全部子错误。
func (errs *MultiError) Error() string {
	wrapped := errs.WrappedErrors()

	lines := make([]string, 0, len(wrapped))
	for _, err := range wrapped {
		lines = append(lines, "* "+err.Error())
	}

	sort.Strings(lines)

	return strings.Join(lines, "\n")
}

// WrappedErrors 返回被聚合的错误列表。
func (errs *MultiError) WrappedErrors() []error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	return errs.inner.WrappedErrors()
}

func (errs *MultiError) Unwrap() []error {
	return errs.WrappedErrors()
}

// Len 返回子错误数量。
func (errs *MultiError) Len() int {
	return len(errs.WrappedErrors())
}

// ErrorOrNil 在没有任何子错误时返回 nil。
func (errs *MultiError) ErrorOrNil() error {
	if errs == nil || errs.inner == nil {
		return nil
	}

	if err := errs.inner.ErrorOrNil(); err != nil {
		return errs
	}

	return nil
}

// Append 追加错误并返回新的 MultiError，nil 接收者同样可用。
func (errs *MultiError) Append(appendErrs ...error) *MultiError {
	if errs == nil {
		errs = &MultiError{inner: new(multierror.Error)}
	}

	return &MultiError{inner: multierror.Append(errs.inner, appendErrs...)}
}
