// Package metrics provides interfaces for types to be in compliance with.
package metrics

import (
	"context"
	"time"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

// Aggregator defines a set of methods for types implementing Aggregator.
type Aggregator interface {
	RecordHit(ctx context.Context, linkID int64, at time.Time) error
	RecordHitAsync(linkID int64)
	ReadDaily(ctx context.Context, linkID int64, from time.Time, to time.Time) ([]modellink.DailyMetric, error)
}
