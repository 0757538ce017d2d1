// Package guard provides interfaces for types to be in compliance with.
package guard

import (
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

// Guard defines a set of methods for types implementing Guard.
type Guard interface {
	Authorize(link modellink.Link, password string) error
	AuthorizeOwner(link modellink.Link, userID string) error
	HashPassword(password string) (string, error)
}
