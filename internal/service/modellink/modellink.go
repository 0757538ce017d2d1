// Package modellink provides locally used types and their structure for link handling between modules.
package modellink

import (
	"time"
)

// Link is the service-facing view of one stored link. Owner is empty for anonymous links.
type Link struct {
	ID             int64
	Alias          string
	URL            string
	Owner          string
	PasswordHash   string
	CreatedAt      time.Time
	ExpiresAt      *time.Time
	LastAccessedAt *time.Time
}

// FullURL pairs an alias with its destination URL for listing.
type FullURL struct {
	URL   string
	Alias string
}

// CollectionItem is one positioned URL of a collection.
type CollectionItem struct {
	Position int
	URL      string
}

// DailyMetric is the aggregate of hits against one link over one UTC calendar day.
type DailyMetric struct {
	Day        time.Time
	Hits       int64
	LastAccess time.Time
}
