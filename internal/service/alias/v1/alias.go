// Package alias provides functionality for validating and generating short link aliases.
package alias

import (
	"crypto/rand"
	"math/big"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/alias"
	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
)

const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratedLength keeps the birthday-collision probability negligible at the expected table size.
const GeneratedLength = 8
const MinLength = 4
const MaxLength = 64

// Aliases reserved for routes, rejected before reaching storage.
var reserved = map[string]bool{
	"api":        true,
	"r":          true,
	"collection": true,
	"unlock":     true,
	"ping":       true,
	"debug":      true,
}

// Check interface implementation explicitly
var (
	_ alias.Allocator = (*Allocator)(nil)
)

// Allocator validates requested aliases and generates random candidates.
type Allocator struct{}

// InitAllocator initializes an Allocator object.
func InitAllocator() *Allocator {
	return &Allocator{}
}

// Validate checks a user-requested alias for length, charset and reserved-route collisions.
func (a *Allocator) Validate(requested string) error {
	if len(requested) < MinLength {
		return &serviceErrors.InvalidAliasError{Alias: requested, Msg: "too short"}
	}
	if len(requested) > MaxLength {
		return &serviceErrors.InvalidAliasError{Alias: requested, Msg: "too long"}
	}
	for _, c := range requested {
		if !isAllowed(c) {
			return &serviceErrors.InvalidAliasError{Alias: requested, Msg: "contains invalid characters"}
		}
	}
	if reserved[requested] {
		return &serviceErrors.InvalidAliasError{Alias: requested, Msg: "reserved route name"}
	}
	return nil
}

// Generate returns a fixed-length candidate drawn from a cryptographically random source over a
// URL-safe alphabet. Uniqueness is enforced by the storage constraint, not here.
func (a *Allocator) Generate() (string, error) {
	max := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, GeneratedLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

func isAllowed(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
