// Package guard provides pure authorization decisions for link access, ownership and passwords.
package guard

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/guard"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/modellink"
)

// Check interface implementation explicitly
var (
	_ guard.Guard = (*Guard)(nil)
)

// Guard struct defines data structure handling and provides support for adding new implementations.
type Guard struct {
	clock func() time.Time
}

// InitGuard initializes a Guard object with an injectable clock, nil falls back to UTC wall time.
func InitGuard(clock func() time.Time) *Guard {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Guard{clock: clock}
}

// Authorize decides whether a resolution request may proceed. Expiry is checked first and is
// terminal regardless of credentials, then the password when the link is protected.
func (g *Guard) Authorize(link modellink.Link, password string) error {
	if link.ExpiresAt != nil && link.ExpiresAt.Before(g.clock()) {
		return &serviceErrors.ExpiredError{Alias: link.Alias}
	}
	if link.PasswordHash == "" {
		return nil
	}
	if password == "" {
		return &serviceErrors.PasswordRequiredError{Alias: link.Alias}
	}
	// bcrypt comparison is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(link.PasswordHash), []byte(password)); err != nil {
		return &serviceErrors.WrongPasswordError{Alias: link.Alias}
	}
	return nil
}

// AuthorizeOwner gates listing and deletion paths. Anonymous links are never owner-accessible.
func (g *Guard) AuthorizeOwner(link modellink.Link, userID string) error {
	if link.Owner == "" || userID == "" || link.Owner != userID {
		return &serviceErrors.NotOwnerError{Alias: link.Alias}
	}
	return nil
}

// HashPassword derives a storable hash for a newly protected link.
func (g *Guard) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
