package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests

func TestErrorsUnwrapToCause(t *testing.T) {
	cause := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
	}{
		{name: "statement preparation failure", err: &StatementPSQLError{Err: cause}},
		{name: "row scanning failure", err: &ScanningPSQLError{Err: cause}},
		{name: "statement execution failure", err: &ExecutionPSQLError{Err: cause}},
		{name: "missing partition", err: &PartitionMissingError{Day: "2026-09-01", Err: cause}},
		{name: "context timeout", err: &ContextTimeoutExceededError{Err: cause}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, cause)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrorsMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("retrieving links: %w", &ScanningPSQLError{Err: errors.New("bad column")})
	var scanErr *ScanningPSQLError
	assert.ErrorAs(t, wrapped, &scanErr)

	wrapped = fmt.Errorf("retrieving links: %w", &StatementPSQLError{Err: errors.New("syntax error")})
	var stmtErr *StatementPSQLError
	assert.ErrorAs(t, wrapped, &stmtErr)
}
