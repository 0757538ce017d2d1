// Package resolver orchestrates the redirect path: link lookup, access gating and best-effort hit
// recording, plus the creation, listing and deletion paths around the link store.
package resolver

import (
	"context"
	"errors"
	"log"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/alias"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/guard"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/metrics"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/resolver"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_link_resolver/internal/storage/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/modelstorage"
)

// MaxAllocationAttempts bounds regeneration after random-alias collisions before the request is
// failed as an operational anomaly.
const MaxAllocationAttempts = 5

const cacheTTL = time.Minute
const cacheCleanupInterval = 5 * time.Minute

// Check interface implementation explicitly
var (
	_ resolver.Processor = (*Resolver)(nil)
)

// Resolver struct defines data structure handling and provides support for adding new implementations.
type Resolver struct {
	allocator   alias.Allocator
	guard       guard.Guard
	aggregator  metrics.Aggregator
	linkStorage storage.LinkStorage
	cache       *cache.Cache
	clock       func() time.Time
}

// InitResolver initializes a Resolver object and sets its attributes.
func InitResolver(allocator alias.Allocator, g guard.Guard, aggregator metrics.Aggregator, linkStorage storage.LinkStorage, clock func() time.Time) (*Resolver, error) {
	if allocator == nil || g == nil || aggregator == nil || linkStorage == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil dependency was passed to resolver initializer"}
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Resolver{
		allocator:   allocator,
		guard:       g,
		aggregator:  aggregator,
		linkStorage: linkStorage,
		cache:       cache.New(cacheTTL, cacheCleanupInterval),
		clock:       clock,
	}, nil
}

// Shorten validates the URL, allocates an alias and persists the link. Allocation and persistence
// are one insert-or-fail-on-conflict operation, there is no check-then-act window.
func (r *Resolver) Shorten(ctx context.Context, URL string, requestedAlias string, password string, ownerID string, expireAfter time.Duration) (string, error) {
	if err := validateURL(URL); err != nil {
		return "", err
	}
	var passwordHash string
	if password != "" {
		var err error
		passwordHash, err = r.guard.HashPassword(password)
		if err != nil {
			return "", err
		}
	}
	var expiresAt *time.Time
	if expireAfter > 0 {
		t := r.clock().Add(expireAfter)
		expiresAt = &t
	}
	entry := modelstorage.NewLinkEntry{
		URL:          URL,
		UserID:       ownerID,
		PasswordHash: passwordHash,
		ExpiresAt:    expiresAt,
	}

	if requestedAlias != "" {
		if err := r.allocator.Validate(requestedAlias); err != nil {
			return "", err
		}
		entry.Alias = requestedAlias
		_, err := r.linkStorage.DumpLink(ctx, entry)
		if err != nil {
			var existsErr *storageErrors.AlreadyExistsError
			if errors.As(err, &existsErr) {
				return "", &serviceErrors.AliasTakenError{Alias: requestedAlias, Err: err}
			}
			return "", err
		}
		return requestedAlias, nil
	}

	var lastErr error
	for attempt := 0; attempt < MaxAllocationAttempts; attempt++ {
		candidate, err := r.allocator.Generate()
		if err != nil {
			return "", err
		}
		entry.Alias = candidate
		_, err = r.linkStorage.DumpLink(ctx, entry)
		if err != nil {
			var existsErr *storageErrors.AlreadyExistsError
			if errors.As(err, &existsErr) {
				// the storage uniqueness constraint serialized a race, draw again
				lastErr = err
				continue
			}
			return "", err
		}
		return candidate, nil
	}
	// repeated random collisions imply near-saturation of the alias space
	log.Println("Shorten: alias allocation exhausted after", MaxAllocationAttempts, "attempts")
	return "", &serviceErrors.AllocationExhaustedError{Attempts: MaxAllocationAttempts, Err: lastErr}
}

// Resolve looks a link up by its alias, authorizes access and returns the destination URL. The hit
// is recorded asynchronously and never delays or fails the redirect.
func (r *Resolver) Resolve(ctx context.Context, linkAlias string, password string) (string, error) {
	link, err := r.lookup(ctx, linkAlias)
	if err != nil {
		return "", err
	}
	if err := r.guard.Authorize(link, password); err != nil {
		return "", err
	}
	r.aggregator.RecordHitAsync(link.ID)
	return link.URL, nil
}

// ListByOwner returns alias:URL pairs of all links owned by userID.
func (r *Resolver) ListByOwner(ctx context.Context, userID string) ([]modellink.FullURL, error) {
	entries, err := r.linkStorage.RetrieveLinksByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	URLs := make([]modellink.FullURL, 0, len(entries))
	for _, entry := range entries {
		URLs = append(URLs, modellink.FullURL{URL: entry.URL, Alias: entry.Alias})
	}
	return URLs, nil
}

// Delete removes a link after an ownership check. Anonymous links are not deletable here.
func (r *Resolver) Delete(ctx context.Context, linkAlias string, userID string) error {
	link, err := r.lookup(ctx, linkAlias)
	if err != nil {
		return err
	}
	if err := r.guard.AuthorizeOwner(link, userID); err != nil {
		return err
	}
	if err := r.linkStorage.DeleteLink(ctx, linkAlias, userID); err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return &serviceErrors.NotFoundError{Alias: linkAlias, Err: err}
		}
		return err
	}
	r.cache.Delete(linkAlias)
	return nil
}

// Stats returns day-bucketed hit aggregates of an owned link over an inclusive interval.
func (r *Resolver) Stats(ctx context.Context, linkAlias string, userID string, from time.Time, to time.Time) ([]modellink.DailyMetric, error) {
	link, err := r.lookup(ctx, linkAlias)
	if err != nil {
		return nil, err
	}
	if err := r.guard.AuthorizeOwner(link, userID); err != nil {
		return nil, err
	}
	return r.aggregator.ReadDaily(ctx, link.ID, from, to)
}

// Recent returns destination URLs of the most recently created links.
func (r *Resolver) Recent(ctx context.Context, limit int) ([]string, error) {
	return r.linkStorage.RetrieveRecentURLs(ctx, limit)
}

// PingDB verifies the storage connection.
func (r *Resolver) PingDB() error {
	return r.linkStorage.PingDB()
}

// lookup serves the single point lookup by alias with a short-TTL cache in front of storage.
func (r *Resolver) lookup(ctx context.Context, linkAlias string) (modellink.Link, error) {
	if cached, ok := r.cache.Get(linkAlias); ok {
		return cached.(modellink.Link), nil
	}
	entry, err := r.linkStorage.RetrieveLink(ctx, linkAlias)
	if err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return modellink.Link{}, &serviceErrors.NotFoundError{Alias: linkAlias, Err: err}
		}
		return modellink.Link{}, err
	}
	link := entryToLink(entry)
	r.cache.SetDefault(linkAlias, link)
	return link, nil
}

func entryToLink(entry modelstorage.LinkEntry) modellink.Link {
	link := modellink.Link{
		ID:        entry.ID,
		Alias:     entry.Alias,
		URL:       entry.URL,
		CreatedAt: entry.CreatedAt,
	}
	if entry.UserID.Valid {
		link.Owner = entry.UserID.String
	}
	if entry.PasswordHash.Valid {
		link.PasswordHash = entry.PasswordHash.String
	}
	if entry.ExpiresAt.Valid {
		t := entry.ExpiresAt.Time
		link.ExpiresAt = &t
	}
	if entry.LastAccessedAt.Valid {
		t := entry.LastAccessedAt.Time
		link.LastAccessedAt = &t
	}
	return link
}

func validateURL(URL string) error {
	parsed, err := url.ParseRequestURI(URL)
	if err != nil {
		return &serviceErrors.InvalidURLError{Msg: err.Error()}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &serviceErrors.InvalidURLError{Msg: "scheme must be http or https"}
	}
	if parsed.Host == "" {
		return &serviceErrors.InvalidURLError{Msg: "URL does not contain a host"}
	}
	return nil
}
