package custerror

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidArgument  uint32 = 3
	CodeNotFound         uint32 = 5
	CodeAlreadyExists    uint32 = 6
	CodePermissionDenied uint32 = 7
	CodeInternal         uint32 = 13
)

var (
	ErrorInvalidArgument  = New(CodeInvalidArgument, "invalid argument")
	ErrorNotFound         = New(CodeNotFound, "not found")
	ErrorAlreadyExists    = New(CodeAlreadyExists, "already exists")
	ErrorPermissionDenied = New(CodePermissionDenied, "permission denied")
	ErrorInternal         = New(CodeInternal, "internal error")
)

type CustomError struct {
	Code    uint32
	Message string
}

func New(code uint32, message string) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
	}
}

func (e *CustomError) Error() string {
	return e.Message
}

func (e *CustomError) Is(target error) bool {
	var other *CustomError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

func FormatInvalidArgument(format string, args ...interface{}) *CustomError {
	return New(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

func FormatNotFound(format string, args ...interface{}) *CustomError {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

func FormatAlreadyExists(format string, args ...interface{}) *CustomError {
	return New(CodeAlreadyExists, fmt.Sprintf(format, args...))
}

func FormatInternalError(format string, args ...interface{}) *CustomError {
	return New(CodeInternal, fmt.Sprintf(format, args...))
}
