package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION_FAILED"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindRateLimited     Kind = "RATE_LIMITED"
	KindInternal        Kind = "INTERNAL"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

// AlreadyExists reports a uniqueness violation (one CV per user, one directory entry per user, email).
func AlreadyExists(message string) *AppError {
	return New(KindAlreadyExists, http.StatusConflict, message, nil)
}

// Unauthorized reports that the acting user does not own the resolved resource.
func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, http.StatusForbidden, message, nil)
}

// Forbidden reports access to a resource that is not exposed to the caller, e.g. a private CV.
func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

// Unauthenticated reports a missing or invalid credential.
func Unauthenticated(message string) *AppError {
	return New(KindUnauthenticated, http.StatusUnauthorized, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(KindRateLimited, http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err has the given kind. Plain errors count as KindInternal.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
