package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
)

var errNotConfigured = errors.New("provider not configured")

// bindFail writes the 400 envelope for a request-binding failure.
func bindFail(c *gin.Context, err error) {
	dtos.Fail(c, http.StatusBadRequest, apperrors.CodeValidation, err.Error(), nil)
}

// pathUUID parses a :param path segment as a UUID, failing the request
// with 400 when it is malformed.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		dtos.Fail(c, http.StatusBadRequest, apperrors.CodeValidation, "invalid "+param, nil)
		return uuid.Nil, false
	}
	return id, true
}

// csvQuery splits a comma-separated query parameter into trimmed values.
func csvQuery(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
