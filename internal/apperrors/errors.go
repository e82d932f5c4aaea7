package apperrors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Stable error codes returned inside the response envelope.
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidation      = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeExternalService = "EXTERNAL_SERVICE_ERROR"
	CodeInternal        = "INTERNAL_ERROR"
)

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("not allowed")

	ErrUserNotFound     = errors.New("user not found")
	ErrMentorNotFound   = errors.New("mentor not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCompanyNotFound  = errors.New("company not found")
	ErrJobNotFound      = errors.New("job posting not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrProfileExists    = errors.New("mentor profile already exists")
	ErrReviewExists     = errors.New("session already reviewed")
	ErrRoomActiveExists = errors.New("session already has an active room")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError is a client-input failure; never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for a named field.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError reports a booking overlap. ConflictingSessionID names the
// already-booked session occupying the requested window.
type ConflictError struct {
	ConflictingSessionID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot conflicts with session %s", e.ConflictingSessionID)
}

// InvalidStateTransitionError reports an illegal session status change.
// The stored status is left untouched.
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("cannot transition session from %q to %q", e.From, e.To)
}

// ExternalServiceError wraps a failure from the video, email, or payment
// provider. The owning database write has already committed by the time one
// of these surfaces; the caller retries the follow-up action, not the write.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// External wraps err as an ExternalServiceError for the named provider.
func External(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}
