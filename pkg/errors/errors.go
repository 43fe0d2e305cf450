package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error so the HTTP layer can map it to a
// status code without inspecting message text.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindSchedulingConflict  Kind = "scheduling_conflict"
	KindRoleMismatch        Kind = "role_mismatch"
	KindOwnershipMismatch   Kind = "ownership_mismatch"
	KindInvalidStatus       Kind = "invalid_status"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUnauthorized        Kind = "unauthorized"
	KindForbidden           Kind = "forbidden"
	KindInternal            Kind = "internal"
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status code.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindRoleMismatch, KindOwnershipMismatch, KindInvalidStatus:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindSchedulingConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Message: message,
		Err:     err,
	}
}

func SchedulingConflict(message string) *AppError {
	return &AppError{
		Kind:    KindSchedulingConflict,
		Message: message,
	}
}

func RoleMismatch(message string) *AppError {
	return &AppError{
		Kind:    KindRoleMismatch,
		Message: message,
	}
}

func OwnershipMismatch(message string) *AppError {
	return &AppError{
		Kind:    KindOwnershipMismatch,
		Message: message,
	}
}

func InvalidStatus(message string) *AppError {
	return &AppError{
		Kind:    KindInvalidStatus,
		Message: message,
	}
}

func UpstreamUnavailable(service string, err error) *AppError {
	return &AppError{
		Kind:    KindUpstreamUnavailable,
		Message: fmt.Sprintf("%s service unavailable", service),
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Kind:    KindUnauthorized,
		Message: message,
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Kind:    KindForbidden,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
