// Package modelstorage provides locally used types and their structure for storage objects.
package modelstorage

import (
	"database/sql"
	"time"
)

// LinkEntry mirrors one row of the links table.
type LinkEntry struct {
	ID             int64          `db:"id"`
	Alias          string         `db:"alias"`
	URL            string         `db:"url"`
	UserID         sql.NullString `db:"user_id"`
	PasswordHash   sql.NullString `db:"password_hash"`
	CreatedAt      time.Time      `db:"created_at"`
	ExpiresAt      sql.NullTime   `db:"expires_at"`
	LastAccessedAt sql.NullTime   `db:"last_accessed_at"`
}

// NewLinkEntry holds attributes of a link pending insertion, the ID is assigned by storage.
type NewLinkEntry struct {
	Alias        string
	URL          string
	UserID       string
	PasswordHash string
	ExpiresAt    *time.Time
}

// CollectionEntry mirrors one row of the collections table.
type CollectionEntry struct {
	ID       int64          `db:"id"`
	Alias    string         `db:"alias"`
	UserID   sql.NullString `db:"user_id"`
	LastSeen time.Time      `db:"last_seen"`
}

// CollectionItemEntry mirrors one row of the collection_items table.
type CollectionItemEntry struct {
	Position int    `db:"position"`
	URL      string `db:"url"`
}

// DailyMetricEntry mirrors one bucket row of the day-partitioned daily_metrics table.
type DailyMetricEntry struct {
	Day        time.Time `db:"day"`
	LinkID     int64     `db:"link_id"`
	Hits       int64     `db:"hits"`
	LastAccess time.Time `db:"last_access"`
}
