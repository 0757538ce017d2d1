package inpsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests

func TestPartitionDay(t *testing.T) {
	tests := []struct {
		name   string
		table  string
		day    string
		wantOK bool
	}{
		{
			name:   "Well formed partition name",
			table:  "daily_metrics_20260901",
			day:    "20260901",
			wantOK: true,
		},
		{
			name:   "Name shorter than the prefix",
			table:  "daily",
			wantOK: false,
		},
		{
			name:   "Foreign attached table",
			table:  "some_other_partition_20260901",
			wantOK: false,
		},
		{
			name:   "Prefix with no day suffix",
			table:  "daily_metrics_",
			wantOK: false,
		},
		{
			name:   "Prefix with a malformed day",
			table:  "daily_metrics_2026-09-01",
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := partitionDay(tt.table)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.day, day)
		})
	}
}
