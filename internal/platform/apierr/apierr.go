package apierr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindUnauthorized     Kind = "unauthorized"
	KindNotFound         Kind = "not_found"
	KindValidation       Kind = "validation"
	KindGenerationFailed Kind = "generation_failed"
	KindPersistence      Kind = "persistence_failed"
	KindRateLimited      Kind = "rate_limited"
)

// Status maps a kind to its HTTP status.
func (k Kind) Status() int {
	switch k {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindGenerationFailed:
		return http.StatusBadGateway
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a kind, a message safe to show callers, and the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Unauthenticated(message string) *Error {
	return New(KindUnauthenticated, message, nil)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message, nil)
}

func Validation(message string, err error) *Error {
	return New(KindValidation, message, err)
}

func GenerationFailed(message string, err error) *Error {
	return New(KindGenerationFailed, message, err)
}

func Persistence(message string, err error) *Error {
	return New(KindPersistence, message, err)
}

func RateLimited(message string) *Error {
	return New(KindRateLimited, message, nil)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// KindOf treats anything unclassified as a persistence failure.
func KindOf(err error) Kind {
	if e, ok := As(err); ok && e.Kind != "" {
		return e.Kind
	}
	return KindPersistence
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
