package repositories

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes we translate at the repository boundary so raw
// database errors never leak past the service layer.
const (
	pqUniqueViolation     = "23505"
	pqExclusionViolation  = "23P01"
	pqForeignKeyViolation = "23503"
)

func isPqError(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}
