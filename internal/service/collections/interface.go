// Package collections provides interfaces for types to be in compliance with.
package collections

import (
	"context"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

// Processor defines a set of methods for types implementing Processor.
type Processor interface {
	Create(ctx context.Context, requestedAlias string, urls []string, ownerID string) (alias string, err error)
	Get(ctx context.Context, alias string) ([]modellink.CollectionItem, error)
	GetItem(ctx context.Context, alias string, position int) (url string, err error)
	Delete(ctx context.Context, alias string, userID string) error
}
