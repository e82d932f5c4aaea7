package dtos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
)

// Envelope is the wire format for every JSON response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination is the shared page descriptor for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes an error envelope.
func Fail(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, Envelope{Success: false, Error: &APIError{Code: code, Message: message, Details: details}})
}

// FailFromError maps a service error onto the taxonomy and writes the
// envelope. Unexpected errors are logged with context and surfaced as a
// generic INTERNAL_ERROR.
func FailFromError(c *gin.Context, err error) {
	var (
		validationErr *apperrors.ValidationError
		conflictErr   *apperrors.ConflictError
		stateErr      *apperrors.InvalidStateTransitionError
		externalErr   *apperrors.ExternalServiceError
	)

	switch {
	case errors.As(err, &validationErr):
		Fail(c, http.StatusBadRequest, apperrors.CodeValidation, validationErr.Message, gin.H{"field": validationErr.Field})
	case errors.As(err, &conflictErr):
		Fail(c, http.StatusConflict, apperrors.CodeConflict, "selected time slot is no longer available", gin.H{
			"conflictingSessionId": conflictErr.ConflictingSessionID.String(),
		})
	case errors.As(err, &stateErr):
		Fail(c, http.StatusConflict, apperrors.CodeConflict, stateErr.Error(), gin.H{
			"from": stateErr.From,
			"to":   stateErr.To,
		})
	case errors.As(err, &externalErr):
		Fail(c, http.StatusBadGateway, apperrors.CodeExternalService, externalErr.Error(), nil)
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrInvalidToken), errors.Is(err, apperrors.ErrInvalidCredentials):
		Fail(c, http.StatusUnauthorized, apperrors.CodeUnauthorized, err.Error(), nil)
	case errors.Is(err, apperrors.ErrForbidden):
		Fail(c, http.StatusForbidden, apperrors.CodeForbidden, err.Error(), nil)
	case isNotFound(err):
		Fail(c, http.StatusNotFound, apperrors.CodeNotFound, err.Error(), nil)
	case isDuplicate(err):
		Fail(c, http.StatusConflict, apperrors.CodeConflict, err.Error(), nil)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Str("method", c.Request.Method).Msg("unhandled error")
		Fail(c, http.StatusInternalServerError, apperrors.CodeInternal, "something went wrong", nil)
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		apperrors.ErrUserNotFound,
		apperrors.ErrMentorNotFound,
		apperrors.ErrSessionNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrReviewNotFound,
		apperrors.ErrCompanyNotFound,
		apperrors.ErrJobNotFound,
		apperrors.ErrPaymentNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isDuplicate(err error) bool {
	for _, target := range []error{
		apperrors.ErrEmailExists,
		apperrors.ErrProfileExists,
		apperrors.ErrReviewExists,
		apperrors.ErrRoomActiveExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
