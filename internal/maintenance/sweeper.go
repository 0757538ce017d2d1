// Package maintenance runs the periodic storage housekeeping. A sweep provisions metric
// partitions ahead of the clock, retires partitions older than the retention horizon so that
// metrics retention never requires row-level deletes, and removes links and collections that
// have not been accessed within their retention windows.
package maintenance

import (
	"context"
	"log"
	"sync"
	"time"

	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
)

const (
	// DefaultSweepInterval is how often a running sweeper re-checks the housekeeping horizons.
	DefaultSweepInterval = 1 * time.Hour
	// DefaultLookaheadDays is how many days of partitions must exist ahead of today, today included.
	DefaultLookaheadDays = 4
	// DefaultLinkRetentionDays is how long an unaccessed link survives before a sweep removes it.
	DefaultLinkRetentionDays = 90
	// DefaultCollectionRetentionDays is how long an unread collection survives before a sweep removes it.
	DefaultCollectionRetentionDays = 30
)

// Sweeper performs partition provisioning, partition retention and stale artifact cleanup sweeps
// against a MaintenanceStorage.
type Sweeper struct {
	mu                      sync.Mutex
	store                   storage.MaintenanceStorage
	metricsRetentionDays    int
	lookaheadDays           int
	linkRetentionDays       int
	collectionRetentionDays int
	clock                   func() time.Time
}

// InitSweeper initializes a Sweeper object and sets its attributes. Non-positive retention and
// lookahead values fall back to the package defaults. A nil clock defaults to UTC now.
func InitSweeper(store storage.MaintenanceStorage, metricsRetentionDays, lookaheadDays, linkRetentionDays, collectionRetentionDays int, clock func() time.Time) (*Sweeper, error) {
	if store == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil dependency was passed to sweeper initializer"}
	}
	if metricsRetentionDays <= 0 {
		metricsRetentionDays = 1
	}
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	if linkRetentionDays <= 0 {
		linkRetentionDays = DefaultLinkRetentionDays
	}
	if collectionRetentionDays <= 0 {
		collectionRetentionDays = DefaultCollectionRetentionDays
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Sweeper{
		store:                   store,
		metricsRetentionDays:    metricsRetentionDays,
		lookaheadDays:           lookaheadDays,
		linkRetentionDays:       linkRetentionDays,
		collectionRetentionDays: collectionRetentionDays,
		clock:                   clock,
	}, nil
}

// Sweep provisions partitions for today plus the lookahead window, drops partitions whose day
// lies strictly before today minus the metrics retention window, and deletes links and collections
// last accessed before their retention cutoffs. Sweeps are serialized, overlapping calls from a
// ticker and a manual trigger cannot interleave DDL.
func (s *Sweeper) Sweep(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.clock().Truncate(24 * time.Hour)
	if err := s.store.CreateDailyPartitions(ctx, today, s.lookaheadDays); err != nil {
		return err
	}
	partitionCutoff := today.AddDate(0, 0, -s.metricsRetentionDays)
	dropped, err := s.store.DropDailyPartitionsBefore(ctx, partitionCutoff)
	if err != nil {
		return err
	}
	if dropped > 0 {
		log.Println("retired", dropped, "metric partitions older than", partitionCutoff.Format("2006-01-02"))
	}
	linkCutoff := today.AddDate(0, 0, -s.linkRetentionDays)
	removedLinks, err := s.store.DeleteStaleLinks(ctx, linkCutoff)
	if err != nil {
		return err
	}
	if removedLinks > 0 {
		log.Println("removed", removedLinks, "links unaccessed since", linkCutoff.Format("2006-01-02"))
	}
	collectionCutoff := today.AddDate(0, 0, -s.collectionRetentionDays)
	removedCollections, err := s.store.DeleteStaleCollections(ctx, collectionCutoff)
	if err != nil {
		return err
	}
	if removedCollections > 0 {
		log.Println("removed", removedCollections, "collections unread since", collectionCutoff.Format("2006-01-02"))
	}
	return nil
}

// Run performs an immediate sweep and then re-sweeps on every tick until ctx is cancelled.
// Sweep failures are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context, wg *sync.WaitGroup, interval time.Duration) {
	defer wg.Done()
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if err := s.Sweep(ctx); err != nil {
		log.Println("maintenance sweep failed:", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				log.Println("maintenance sweep failed:", err)
			}
		}
	}
}
