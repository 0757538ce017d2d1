// Package metrics provides day-bucketed hit accounting on top of the metrics storage. Recording is
// best-effort relative to the redirect path: failures are logged and swallowed, never surfaced.
package metrics

import (
	"context"
	"log"
	"time"

	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/metrics"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
)

// DefaultRecordTimeout bounds the fire-and-forget hit recording so it can never hold back a redirect.
const DefaultRecordTimeout = 250 * time.Millisecond

// Check interface implementation explicitly
var (
	_ metrics.Aggregator = (*Aggregator)(nil)
)

// Aggregator struct defines data structure handling and provides support for adding new implementations.
type Aggregator struct {
	metricsStorage storage.MetricsStorage
	recordTimeout  time.Duration
	clock          func() time.Time
}

// InitAggregator initializes an Aggregator object and sets its attributes.
func InitAggregator(metricsStorage storage.MetricsStorage, recordTimeout time.Duration, clock func() time.Time) (*Aggregator, error) {
	if metricsStorage == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil storage was passed to aggregator initializer"}
	}
	if recordTimeout <= 0 {
		recordTimeout = DefaultRecordTimeout
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Aggregator{
		metricsStorage: metricsStorage,
		recordTimeout:  recordTimeout,
		clock:          clock,
	}, nil
}

// RecordHit synchronously increments the UTC-day bucket of a link.
func (a *Aggregator) RecordHit(ctx context.Context, linkID int64, at time.Time) error {
	return a.metricsStorage.RecordHit(ctx, linkID, at)
}

// RecordHitAsync records a hit without blocking the caller. Errors, including a missing partition
// and timeout, are operational-only and never reach the redirect response.
func (a *Aggregator) RecordHitAsync(linkID int64) {
	at := a.clock()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.recordTimeout)
		defer cancel()
		if err := a.metricsStorage.RecordHit(ctx, linkID, at); err != nil {
			log.Println("Recording hit asynchronously:", err)
		}
	}()
}

// ReadDaily returns per-day aggregates over an inclusive day interval in ascending order. Days with
// no hits are absent, callers fill zeros if needed.
func (a *Aggregator) ReadDaily(ctx context.Context, linkID int64, from time.Time, to time.Time) ([]modellink.DailyMetric, error) {
	entries, err := a.metricsStorage.RetrieveDailyMetrics(ctx, linkID, from, to)
	if err != nil {
		return nil, err
	}
	daily := make([]modellink.DailyMetric, 0, len(entries))
	for _, entry := range entries {
		daily = append(daily, modellink.DailyMetric{
			Day:        entry.Day,
			Hits:       entry.Hits,
			LastAccess: entry.LastAccess,
		})
	}
	return daily, nil
}
