package collections

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	aliasService "github.com/danilovkiri/dk_go_link_resolver/internal/service/alias/v1"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	guardService "github.com/danilovkiri/dk_go_link_resolver/internal/service/guard/v1"
	"github.com/danilovkiri/dk_go_link_resolver/internal/storage/inmemory"
)

func newTestCollections(t *testing.T) (*Collections, *inmemory.Storage) {
	st := inmemory.InitStorage()
	c, err := InitCollections(aliasService.InitAllocator(), guardService.InitGuard(nil), st)
	assert.NoError(t, err)
	return c, st
}

// Tests

func TestInitCollections_NilDependency(t *testing.T) {
	_, err := InitCollections(nil, nil, nil)
	var nilErr *serviceErrors.ServiceFoundNilDependency
	assert.ErrorAs(t, err, &nilErr)
}

func TestCreateGet_RoundTripOrder(t *testing.T) {
	c, _ := newTestCollections(t)
	urls := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
	alias, err := c.Create(context.Background(), "", urls, "")
	assert.NoError(t, err)
	assert.Len(t, alias, aliasService.GeneratedLength)

	items, err := c.Get(context.Background(), alias)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, i, item.Position)
		assert.Equal(t, urls[i], item.URL)
	}
}

func TestCreate_EmptyList(t *testing.T) {
	c, _ := newTestCollections(t)
	_, err := c.Create(context.Background(), "", nil, "")
	var emptyErr *serviceErrors.EmptyCollectionError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestCreate_InvalidItemURL(t *testing.T) {
	c, _ := newTestCollections(t)
	_, err := c.Create(context.Background(), "", []string{"https://a.example.com", "not_a_url"}, "")
	var invalidErr *serviceErrors.InvalidURLError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestCreate_AliasTaken(t *testing.T) {
	c, _ := newTestCollections(t)
	_, err := c.Create(context.Background(), "myList", []string{"https://a.example.com"}, "")
	assert.NoError(t, err)
	_, err = c.Create(context.Background(), "myList", []string{"https://b.example.com"}, "")
	var takenErr *serviceErrors.AliasTakenError
	assert.ErrorAs(t, err, &takenErr)
}

func TestCreate_ReservedAlias(t *testing.T) {
	c, _ := newTestCollections(t)
	_, err := c.Create(context.Background(), "collection", []string{"https://a.example.com"}, "")
	var invalidErr *serviceErrors.InvalidAliasError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestGetItem(t *testing.T) {
	c, _ := newTestCollections(t)
	urls := []string{"https://a.example.com", "https://b.example.com"}
	alias, err := c.Create(context.Background(), "", urls, "")
	assert.NoError(t, err)

	URL, err := c.GetItem(context.Background(), alias, 1)
	assert.NoError(t, err)
	assert.Equal(t, "https://b.example.com", URL)

	var notFoundErr *serviceErrors.NotFoundError
	_, err = c.GetItem(context.Background(), alias, 5)
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDelete_OwnerGated(t *testing.T) {
	c, _ := newTestCollections(t)
	owner := uuid.New().String()
	alias, err := c.Create(context.Background(), "", []string{"https://a.example.com"}, owner)
	assert.NoError(t, err)

	var notOwnerErr *serviceErrors.NotOwnerError
	assert.ErrorAs(t, c.Delete(context.Background(), alias, uuid.New().String()), &notOwnerErr)

	assert.NoError(t, c.Delete(context.Background(), alias, owner))

	var notFoundErr *serviceErrors.NotFoundError
	_, err = c.Get(context.Background(), alias)
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestDelete_AnonymousCollection(t *testing.T) {
	c, _ := newTestCollections(t)
	alias, err := c.Create(context.Background(), "", []string{"https://a.example.com"}, "")
	assert.NoError(t, err)
	var notOwnerErr *serviceErrors.NotOwnerError
	assert.ErrorAs(t, c.Delete(context.Background(), alias, uuid.New().String()), &notOwnerErr)
}
