// Package resolver provides interfaces for types to be in compliance with.
package resolver

import (
	"context"
	"time"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	Shorten(ctx context.Context, url string, requestedAlias string, password string, ownerID string, expireAfter time.Duration) (alias string, err error)
	Resolve(ctx context.Context, alias string, password string) (url string, err error)
	ListByOwner(ctx context.Context, userID string) ([]modellink.FullURL, error)
	Delete(ctx context.Context, alias string, userID string) error
	Stats(ctx context.Context, alias string, userID string, from time.Time, to time.Time) ([]modellink.DailyMetric, error)
	Recent(ctx context.Context, limit int) ([]string, error)
	PingDB() error
}
