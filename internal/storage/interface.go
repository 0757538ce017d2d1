// Package storage provides interfaces for types to be in compliance with.
package storage

import (
	"context"
	"time"

	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/modelstorage"
)

// LinkSetter defines a set of methods for types implementing LinkSetter.
type LinkSetter interface {
	DumpLink(ctx context.Context, link modelstorage.NewLinkEntry) (id int64, err error)
}

// LinkGetter defines a set of methods for types implementing LinkGetter.
type LinkGetter interface {
	RetrieveLink(ctx context.Context, alias string) (modelstorage.LinkEntry, error)
}

// LinkGetterByUserID defines a set of methods for types implementing LinkGetterByUserID.
type LinkGetterByUserID interface {
	RetrieveLinksByUserID(ctx context.Context, userID string) ([]modelstorage.LinkEntry, error)
}

// LinkDeleter defines a set of methods for types implementing LinkDeleter.
type LinkDeleter interface {
	DeleteLink(ctx context.Context, alias string, userID string) error
}

// RecentGetter defines a set of methods for types implementing RecentGetter.
type RecentGetter interface {
	RetrieveRecentURLs(ctx context.Context, limit int) ([]string, error)
}

// HitRecorder defines a set of methods for types implementing HitRecorder.
type HitRecorder interface {
	RecordHit(ctx context.Context, linkID int64, at time.Time) error
}

// DailyMetricsGetter defines a set of methods for types implementing DailyMetricsGetter.
type DailyMetricsGetter interface {
	RetrieveDailyMetrics(ctx context.Context, linkID int64, from time.Time, to time.Time) ([]modelstorage.DailyMetricEntry, error)
}

// PartitionMaintainer defines maintenance-only partition provisioning and retirement methods.
type PartitionMaintainer interface {
	CreateDailyPartitions(ctx context.Context, from time.Time, days int) error
	DropDailyPartitionsBefore(ctx context.Context, cutoff time.Time) (dropped int, err error)
}

// StaleArtifactCleaner defines maintenance-only removal of links and collections whose last
// access fell behind the retention cutoff.
type StaleArtifactCleaner interface {
	DeleteStaleLinks(ctx context.Context, cutoff time.Time) (removed int64, err error)
	DeleteStaleCollections(ctx context.Context, cutoff time.Time) (removed int64, err error)
}

// MaintenanceStorage defines a set of embedded interfaces driven by the background sweeper.
type MaintenanceStorage interface {
	PartitionMaintainer
	StaleArtifactCleaner
}

// CollectionSetter defines a set of methods for types implementing CollectionSetter.
type CollectionSetter interface {
	DumpCollection(ctx context.Context, alias string, userID string, urls []string) (id int64, err error)
}

// CollectionGetter defines a set of methods for types implementing CollectionGetter.
type CollectionGetter interface {
	RetrieveCollection(ctx context.Context, alias string) (modelstorage.CollectionEntry, []modelstorage.CollectionItemEntry, error)
	RetrieveCollectionItem(ctx context.Context, alias string, position int) (string, error)
}

// CollectionDeleter defines a set of methods for types implementing CollectionDeleter.
type CollectionDeleter interface {
	DeleteCollection(ctx context.Context, alias string, userID string) error
}

// Pinger defines a set of methods for types implementing Pinger.
type Pinger interface {
	PingDB() error
}

// Closer defines a set of methods for types implementing Closer.
type Closer interface {
	CloseDB() error
}

// LinkStorage defines a set of embedded interfaces for the link mapping store.
type LinkStorage interface {
	LinkSetter
	LinkGetter
	LinkGetterByUserID
	LinkDeleter
	RecentGetter
	Pinger
}

// MetricsStorage defines a set of embedded interfaces for the day-bucketed hit counters.
type MetricsStorage interface {
	HitRecorder
	DailyMetricsGetter
	PartitionMaintainer
}

// CollectionStorage defines a set of embedded interfaces for ordered URL collections.
type CollectionStorage interface {
	CollectionSetter
	CollectionGetter
	CollectionDeleter
}

// Storage defines a set of embedded interfaces for types implementing Storage.
type Storage interface {
	LinkStorage
	MetricsStorage
	CollectionStorage
	StaleArtifactCleaner
	Closer
}
