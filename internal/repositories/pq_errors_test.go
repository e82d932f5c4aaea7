package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsPqError(t *testing.T) {
	unique := &pq.Error{Code: pq.ErrorCode(pqUniqueViolation), Constraint: "companies_name_key"}
	exclusion := &pq.Error{Code: pq.ErrorCode(pqExclusionViolation), Constraint: "sessions_no_overlap"}

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{name: "unique violation", err: unique, code: pqUniqueViolation, want: true},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", unique), code: pqUniqueViolation, want: true},
		{name: "exclusion violation", err: exclusion, code: pqExclusionViolation, want: true},
		{name: "code mismatch", err: unique, code: pqExclusionViolation, want: false},
		{name: "plain error", err: errors.New("connection refused"), code: pqUniqueViolation, want: false},
		{name: "nil", err: nil, code: pqUniqueViolation, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := isPqError(test.err, test.code); got != test.want {
				t.Errorf("isPqError() = %v, want %v", got, test.want)
			}
		})
	}
}
