package service

import (
	"errors"
	"fmt"
)

// ValidationError 入参或状态流转不合法，原因直接返回给调用方，不重试
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func newValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError 指定 ID 的赛事不存在
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Event with ID %s not found", e.ID)
}

// IsValidation 判断 err 链中是否有 ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound 判断 err 链中是否有 NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
