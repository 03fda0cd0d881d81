// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"net/http"
)

// Sentinel errors for the operation boundary. Services wrap these with
// fmt.Errorf("context: %w", ...) and handlers map them onto the response
// envelope; none of them is ever allowed to escape a handler.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrDeletionBlocked = errors.New("deletion blocked")
	ErrPartialSync     = errors.New("partial identity sync")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")
)

type AppError struct {
	Err     error
	Message string
	Status  int
	Code    string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Status:  status,
		Code:    code,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func UnauthenticatedError(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return NewAppError(
		ErrUnauthenticated,
		message,
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
	)
}

func ForbiddenError(message string) *AppError {
	if message == "" {
		message = "insufficient permissions"
	}
	return NewAppError(ErrForbidden, message, http.StatusForbidden, "FORBIDDEN")
}

func ValidationError(message string) *AppError {
	return NewAppError(
		ErrValidation,
		message,
		http.StatusBadRequest,
		"VALIDATION_ERROR",
	)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(
		ErrNotFound,
		resource+" not found",
		http.StatusNotFound,
		"NOT_FOUND",
	)
}

func DeletionBlockedError(message string) *AppError {
	return NewAppError(
		ErrDeletionBlocked,
		message,
		http.StatusConflict,
		"DELETION_BLOCKED",
	)
}

// PartialSyncError marks a divergence between the identity provider's claim
// store and the local mirror. Callers must also surface it on the operator
// channel; a stale mirror is a latent authorization inconsistency, not just
// a failed request.
func PartialSyncError(message string) *AppError {
	return NewAppError(
		ErrPartialSync,
		message,
		http.StatusBadGateway,
		"PARTIAL_SYNC",
	)
}

func DuplicateError(field string) *AppError {
	return NewAppError(
		ErrDuplicateKey,
		field+" already exists",
		http.StatusConflict,
		"DUPLICATE",
	)
}

func TokenExpiredError() *AppError {
	return NewAppError(
		ErrTokenExpired,
		"session token has expired",
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
	)
}

func TokenInvalidError() *AppError {
	return NewAppError(
		ErrTokenInvalid,
		"session token is invalid",
		http.StatusUnauthorized,
		"TOKEN_INVALID",
	)
}
