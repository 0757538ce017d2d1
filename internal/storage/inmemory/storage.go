// Package inmemory provides functionality for storing links, collections and daily metrics in
// process-local maps, used for tests and DSN-less runs.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_link_resolver/internal/storage/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ storage.Storage = (*Storage)(nil)
)

const dayLayout = "2006-01-02"

type collectionRecord struct {
	entry modelstorage.CollectionEntry
	items []modelstorage.CollectionItemEntry
}

// Storage struct defines data structure handling and provides support for adding new implementations.
type Storage struct {
	mu          sync.Mutex
	links       map[string]modelstorage.LinkEntry
	linkOrder   []string
	collections map[string]*collectionRecord
	metrics     map[string]map[int64]modelstorage.DailyMetricEntry
	partitions  map[string]bool
	nextID      int64
}

// InitStorage initializes a Storage object and provisions metrics partitions around the current day.
func InitStorage() *Storage {
	st := &Storage{
		links:       make(map[string]modelstorage.LinkEntry),
		collections: make(map[string]*collectionRecord),
		metrics:     make(map[string]map[int64]modelstorage.DailyMetricEntry),
		partitions:  make(map[string]bool),
		nextID:      1,
	}
	_ = st.CreateDailyPartitions(context.Background(), time.Now().UTC(), 4)
	return st
}

// DumpLink stores a new link entry, failing on an alias conflict.
func (s *Storage) DumpLink(ctx context.Context, link modelstorage.NewLinkEntry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.links[link.Alias]; ok {
		return 0, &storageErrors.AlreadyExistsError{Alias: link.Alias}
	}
	id := s.nextID
	s.nextID++
	entry := modelstorage.LinkEntry{
		ID:        id,
		Alias:     link.Alias,
		URL:       link.URL,
		CreatedAt: time.Now().UTC(),
	}
	if link.UserID != "" {
		entry.UserID.String = link.UserID
		entry.UserID.Valid = true
	}
	if link.PasswordHash != "" {
		entry.PasswordHash.String = link.PasswordHash
		entry.PasswordHash.Valid = true
	}
	if link.ExpiresAt != nil {
		entry.ExpiresAt.Time = *link.ExpiresAt
		entry.ExpiresAt.Valid = true
	}
	s.links[link.Alias] = entry
	s.linkOrder = append(s.linkOrder, link.Alias)
	return id, nil
}

// RetrieveLink returns a link entry identified by its alias.
func (s *Storage) RetrieveLink(ctx context.Context, alias string) (modelstorage.LinkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.links[alias]
	if !ok {
		return modelstorage.LinkEntry{}, &storageErrors.NotFoundError{Alias: alias}
	}
	return entry, nil
}

// RetrieveLinksByUserID returns all link entries owned by one particular user ID.
func (s *Storage) RetrieveLinksByUserID(ctx context.Context, userID string) ([]modelstorage.LinkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []modelstorage.LinkEntry
	for i := len(s.linkOrder) - 1; i >= 0; i-- {
		entry, ok := s.links[s.linkOrder[i]]
		if ok && entry.UserID.Valid && entry.UserID.String == userID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// DeleteLink removes a link entry conditionally on its alias and owner.
func (s *Storage) DeleteLink(ctx context.Context, alias string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.links[alias]
	if !ok || !entry.UserID.Valid || entry.UserID.String != userID {
		return &storageErrors.NotFoundError{Alias: alias}
	}
	delete(s.links, alias)
	return nil
}

// RetrieveRecentURLs returns destination URLs of the most recently created links.
func (s *Storage) RetrieveRecentURLs(ctx context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var urls []string
	for i := len(s.linkOrder) - 1; i >= 0 && len(urls) < limit; i-- {
		if entry, ok := s.links[s.linkOrder[i]]; ok {
			urls = append(urls, entry.URL)
		}
	}
	return urls, nil
}

// RecordHit increments the (day, link_id) bucket under the storage lock, matching the atomic
// PSQL upsert semantics.
func (s *Storage) RecordHit(ctx context.Context, linkID int64, at time.Time) error {
	day := at.UTC().Format(dayLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.partitions[day] {
		return &storageErrors.PartitionMissingError{Day: day}
	}
	buckets, ok := s.metrics[day]
	if !ok {
		buckets = make(map[int64]modelstorage.DailyMetricEntry)
		s.metrics[day] = buckets
	}
	bucket, ok := buckets[linkID]
	if !ok {
		parsed, _ := time.Parse(dayLayout, day)
		bucket = modelstorage.DailyMetricEntry{Day: parsed, LinkID: linkID, Hits: 0, LastAccess: at}
	}
	bucket.Hits++
	if at.After(bucket.LastAccess) {
		bucket.LastAccess = at
	}
	buckets[linkID] = bucket
	for alias, entry := range s.links {
		if entry.ID == linkID {
			if !entry.LastAccessedAt.Valid || at.After(entry.LastAccessedAt.Time) {
				entry.LastAccessedAt.Time = at
				entry.LastAccessedAt.Valid = true
				s.links[alias] = entry
			}
			break
		}
	}
	return nil
}

// RetrieveDailyMetrics returns bucket entries of one link over an inclusive day interval in
// ascending day order.
func (s *Storage) RetrieveDailyMetrics(ctx context.Context, linkID int64, from time.Time, to time.Time) ([]modelstorage.DailyMetricEntry, error) {
	fromDay := from.UTC().Format(dayLayout)
	toDay := to.UTC().Format(dayLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	var entries []modelstorage.DailyMetricEntry
	for day, buckets := range s.metrics {
		if day < fromDay || day > toDay {
			continue
		}
		if bucket, ok := buckets[linkID]; ok {
			entries = append(entries, bucket)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Day.Before(entries[j].Day) })
	return entries, nil
}

// CreateDailyPartitions provisions one partition per day starting at from, idempotently.
func (s *Storage) CreateDailyPartitions(ctx context.Context, from time.Time, days int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for offset := 0; offset < days; offset++ {
		day := from.UTC().AddDate(0, 0, offset).Format(dayLayout)
		s.partitions[day] = true
	}
	return nil
}

// DropDailyPartitionsBefore retires whole day partitions older than the cutoff day.
func (s *Storage) DropDailyPartitionsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	cutoffDay := cutoff.UTC().Format(dayLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for day := range s.partitions {
		if day < cutoffDay {
			delete(s.partitions, day)
			delete(s.metrics, day)
			dropped++
		}
	}
	return dropped, nil
}

// DeleteStaleLinks removes links whose last access fell behind the cutoff, links never resolved
// age from their creation time instead.
func (s *Storage) DeleteStaleLinks(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for alias, entry := range s.links {
		lastAccess := entry.CreatedAt
		if entry.LastAccessedAt.Valid {
			lastAccess = entry.LastAccessedAt.Time
		}
		if lastAccess.Before(cutoff) {
			delete(s.links, alias)
			removed++
		}
	}
	return removed, nil
}

// DeleteStaleCollections removes collections not read since the cutoff day.
func (s *Storage) DeleteStaleCollections(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for alias, record := range s.collections {
		if record.entry.LastSeen.Before(cutoff) {
			delete(s.collections, alias)
			removed++
		}
	}
	return removed, nil
}

// DumpCollection stores a collection entry with its dense item sequence, failing on an alias conflict.
func (s *Storage) DumpCollection(ctx context.Context, alias string, userID string, urls []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[alias]; ok {
		return 0, &storageErrors.AlreadyExistsError{Alias: alias}
	}
	id := s.nextID
	s.nextID++
	record := &collectionRecord{
		entry: modelstorage.CollectionEntry{ID: id, Alias: alias, LastSeen: time.Now().UTC()},
	}
	if userID != "" {
		record.entry.UserID.String = userID
		record.entry.UserID.Valid = true
	}
	for position, url := range urls {
		record.items = append(record.items, modelstorage.CollectionItemEntry{Position: position, URL: url})
	}
	s.collections[alias] = record
	return id, nil
}

// RetrieveCollection returns a collection entry with its items ordered by position and bumps last_seen.
func (s *Storage) RetrieveCollection(ctx context.Context, alias string) (modelstorage.CollectionEntry, []modelstorage.CollectionItemEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.collections[alias]
	if !ok {
		return modelstorage.CollectionEntry{}, nil, &storageErrors.NotFoundError{Alias: alias}
	}
	record.entry.LastSeen = time.Now().UTC()
	items := make([]modelstorage.CollectionItemEntry, len(record.items))
	copy(items, record.items)
	return record.entry, items, nil
}

// RetrieveCollectionItem returns the single URL held at one position of a collection.
func (s *Storage) RetrieveCollectionItem(ctx context.Context, alias string, position int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.collections[alias]
	if !ok {
		return "", &storageErrors.NotFoundError{Alias: alias}
	}
	for _, item := range record.items {
		if item.Position == position {
			return item.URL, nil
		}
	}
	return "", &storageErrors.NotFoundError{Alias: alias}
}

// DeleteCollection removes a collection entry conditionally on its alias and owner.
func (s *Storage) DeleteCollection(ctx context.Context, alias string, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.collections[alias]
	if !ok || !record.entry.UserID.Valid || record.entry.UserID.String != userID {
		return &storageErrors.NotFoundError{Alias: alias}
	}
	delete(s.collections, alias)
	return nil
}

// PingDB is a mock for PSQL DB pinger for inmemory DB handling.
func (s *Storage) PingDB() error {
	return nil
}

// CloseDB is a mock for PSQL DB closer for inmemory DB handling.
func (s *Storage) CloseDB() error {
	return nil
}
