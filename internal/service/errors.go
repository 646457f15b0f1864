package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ── 跨模块业务错误 ──

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrSectionNotFound  = errors.New("section not found")
	ErrStatusNotFound   = errors.New("employment status not found")

	// Archive 前置条件错误，按约定原样透出给调用方
	ErrAlreadyArchived = errors.New("Already archived")
	ErrMustResignFirst = errors.New("Must be resigned first")
)

// ValidationError 字段级校验错误（可恢复，带明细透出给调用方）
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError 构造单字段校验错误
func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidationError 判断并提取字段级校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
