// Package apierror defines the domain error taxonomy and the standardized
// error envelope returned to API clients. Services return *Error values so
// internal details (stack traces, DB errors, etc.) never leak to callers;
// handlers map each Kind to an HTTP status.
package apierror

import (
	"errors"
	"net/http"
)

// Kind is a stable, machine-readable error classification.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindForbidden         Kind = "FORBIDDEN"
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindLimitExceeded     Kind = "LIMIT_EXCEEDED"
	KindAlreadyExists     Kind = "ALREADY_EXISTS"
	KindNoOp              Kind = "NO_OP"
	KindNoOpenPeriod      Kind = "NO_OPEN_PERIOD"
	KindNoOpenRegister    Kind = "NO_OPEN_REGISTER"
	KindBadRequest        Kind = "BAD_REQUEST"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindInternal          Kind = "INTERNAL"
)

// Error is the canonical error envelope for all 4xx/5xx responses.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"detail"`
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func NotFound(msg string) *Error          { return New(KindNotFound, msg) }
func Forbidden(msg string) *Error         { return New(KindForbidden, msg) }
func InvalidArgument(msg string) *Error   { return New(KindInvalidArgument, msg) }
func InsufficientStock(msg string) *Error { return New(KindInsufficientStock, msg) }
func LimitExceeded(msg string) *Error     { return New(KindLimitExceeded, msg) }
func AlreadyExists(msg string) *Error     { return New(KindAlreadyExists, msg) }
func NoOp(msg string) *Error              { return New(KindNoOp, msg) }
func NoOpenPeriod(msg string) *Error      { return New(KindNoOpenPeriod, msg) }
func NoOpenRegister(msg string) *Error    { return New(KindNoOpenRegister, msg) }
func BadRequest(msg string) *Error        { return New(KindBadRequest, msg) }
func RateLimited(msg string) *Error       { return New(KindRateLimited, msg) }
func Unauthorized(msg string) *Error      { return New(KindUnauthorized, msg) }
func Internal(msg string) *Error          { return New(KindInternal, msg) }

// From converts any error into an *Error. Unknown errors become KindInternal
// with a generic message so storage errors are never exposed.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("Erro interno do servidor")
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(err error) int {
	switch From(err).Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden, KindLimitExceeded:
		return http.StatusForbidden
	case KindInvalidArgument, KindInsufficientStock, KindAlreadyExists,
		KindNoOp, KindNoOpenPeriod, KindNoOpenRegister, KindBadRequest:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"detail"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Kind: KindInvalidArgument, Message: "Erro de validação", Fields: fields}
}
