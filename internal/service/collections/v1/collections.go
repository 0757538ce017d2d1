// Package collections provides ordered groups of URLs addressable by a single alias. Membership is
// immutable after creation, the whole item list is supplied atomically.
package collections

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/alias"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/collections"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/guard"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_link_resolver/internal/storage/errors"
)

// MaxAllocationAttempts bounds regeneration after random-alias collisions, matching the link path.
const MaxAllocationAttempts = 5

// Check interface implementation explicitly
var (
	_ collections.Processor = (*Collections)(nil)
)

// Collections struct defines data structure handling and provides support for adding new implementations.
type Collections struct {
	allocator         alias.Allocator
	guard             guard.Guard
	collectionStorage storage.CollectionStorage
}

// InitCollections initializes a Collections object and sets its attributes.
func InitCollections(allocator alias.Allocator, g guard.Guard, collectionStorage storage.CollectionStorage) (*Collections, error) {
	if allocator == nil || g == nil || collectionStorage == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil dependency was passed to collections initializer"}
	}
	return &Collections{
		allocator:         allocator,
		guard:             g,
		collectionStorage: collectionStorage,
	}, nil
}

// Create validates the item URLs, allocates an alias in the collection namespace and persists the
// collection with dense positions 0..n-1 in request order.
func (c *Collections) Create(ctx context.Context, requestedAlias string, urls []string, ownerID string) (string, error) {
	if len(urls) == 0 {
		return "", &serviceErrors.EmptyCollectionError{}
	}
	for _, u := range urls {
		if err := validateURL(u); err != nil {
			return "", err
		}
	}

	if requestedAlias != "" {
		if err := c.allocator.Validate(requestedAlias); err != nil {
			return "", err
		}
		_, err := c.collectionStorage.DumpCollection(ctx, requestedAlias, ownerID, urls)
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
		candidate, err := c.allocator.Generate()
		if err != nil {
			return "", err
		}
		_, err = c.collectionStorage.DumpCollection(ctx, candidate, ownerID, urls)
		if err != nil {
			var existsErr *storageErrors.AlreadyExistsError
			if errors.As(err, &existsErr) {
				lastErr = err
				continue
			}
			return "", err
		}
		return candidate, nil
	}
	log.Println("Create: collection alias allocation exhausted after", MaxAllocationAttempts, "attempts")
	return "", &serviceErrors.AllocationExhaustedError{Attempts: MaxAllocationAttempts, Err: lastErr}
}

// Get returns the ordered items of a collection.
func (c *Collections) Get(ctx context.Context, collectionAlias string) ([]modellink.CollectionItem, error) {
	_, entries, err := c.collectionStorage.RetrieveCollection(ctx, collectionAlias)
	if err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return nil, &serviceErrors.NotFoundError{Alias: collectionAlias, Err: err}
		}
		return nil, err
	}
	items := make([]modellink.CollectionItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, modellink.CollectionItem{Position: entry.Position, URL: entry.URL})
	}
	return items, nil
}

// GetItem returns the single URL held at one position of a collection.
func (c *Collections) GetItem(ctx context.Context, collectionAlias string, position int) (string, error) {
	URL, err := c.collectionStorage.RetrieveCollectionItem(ctx, collectionAlias, position)
	if err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", &serviceErrors.NotFoundError{Alias: collectionAlias, Err: err}
		}
		return "", err
	}
	return URL, nil
}

// Delete removes a collection after an ownership check, items cascade in storage.
func (c *Collections) Delete(ctx context.Context, collectionAlias string, userID string) error {
	entry, _, err := c.collectionStorage.RetrieveCollection(ctx, collectionAlias)
	if err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return &serviceErrors.NotFoundError{Alias: collectionAlias, Err: err}
		}
		return err
	}
	owned := modellink.Link{Alias: entry.Alias}
	if entry.UserID.Valid {
		owned.Owner = entry.UserID.String
	}
	if err := c.guard.AuthorizeOwner(owned, userID); err != nil {
		return err
	}
	if err := c.collectionStorage.DeleteCollection(ctx, collectionAlias, userID); err != nil {
		var notFoundErr *storageErrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return &serviceErrors.NotFoundError{Alias: collectionAlias, Err: err}
		}
		return err
	}
	return nil
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
