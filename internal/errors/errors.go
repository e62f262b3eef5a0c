package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of stash error.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"          // 404
	ErrTagAlreadyExists ErrorCode = "TAG_ALREADY_EXISTS" // 409
	ErrInternal         ErrorCode = "INTERNAL"           // 500
)

// StashError is a structured error with code, status and optional details.
type StashError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

func (e *StashError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for bad input.
func NewInvalidRequest(msg string) *StashError {
	return &StashError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidField creates a 400 error naming the offending field.
func NewInvalidField(field, msg string) *StashError {
	return &StashError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: fmt.Sprintf("%s %s", field, msg),
		Details: map[string]any{"field": field},
	}
}

// NewNotFound creates a 404 error for a missing (or deleted) item.
func NewNotFound(id string) *StashError {
	return &StashError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("item not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewTagAlreadyExists creates a 409 error when an item already carries tag,
// compared case-insensitively.
func NewTagAlreadyExists(id, tag string) *StashError {
	return &StashError{
		Code:    ErrTagAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("item %s already has tag %q", id, tag),
		Details: map[string]any{"id": id, "tag": tag},
	}
}

// NewInternal creates a 500 error wrapping an unexpected failure.
func NewInternal(err error) *StashError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &StashError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// As finds the first *StashError in err's chain.
func As(err error) (*StashError, bool) {
	var sErr *StashError
	if stderrors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// Is reports whether err wraps a *StashError with the given code.
func Is(err error, code ErrorCode) bool {
	sErr, ok := As(err)
	return ok && sErr.Code == code
}
