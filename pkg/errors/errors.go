package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// TokenInvalid signals that the Facebook access token was rejected while
// resolving the page identity.
func TokenInvalid(message string, err error) *AppError {
	return &AppError{
		Code:    "TOKEN_INVALID",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

// ProviderError wraps an application-level error object returned inside a
// Graph API response body. These are never retried; the provider code is
// kept in the message so operators can look it up.
func ProviderError(code int, message string) *AppError {
	return &AppError{
		Code:    "PROVIDER_ERROR",
		Message: fmt.Sprintf("Facebook API Error: (#%d) %s", code, message),
		Status:  http.StatusBadGateway,
		Err:     nil,
	}
}

// RecipientUnavailable is the distinguished mapping for Graph send error 551.
func RecipientUnavailable() *AppError {
	return &AppError{
		Code:    "RECIPIENT_UNAVAILABLE",
		Message: "This person is not available right now (Error #551). Check your messaging permissions or whether the user contacted the page recently.",
		Status:  http.StatusBadGateway,
		Err:     nil,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
		Err:     nil,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
