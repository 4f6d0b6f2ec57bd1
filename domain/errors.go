package domain

import "errors"

type ErrorCode string

const (
	CodeNotFound     ErrorCode = "not_found"
	CodeInvalidInput ErrorCode = "invalid_input"
	CodeInvalidState ErrorCode = "invalid_state"
	CodeConflict     ErrorCode = "conflict"
)

// Error is a client-facing domain failure. Anything else that bubbles up
// from a store is treated as an internal error by the handlers.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewNotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func NewInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

func NewInvalidState(message string) *Error {
	return &Error{Code: CodeInvalidState, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

func CodeOf(err error) (ErrorCode, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code, true
	}
	return "", false
}
