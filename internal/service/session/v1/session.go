// Package session provides issuing and resolution of ciphered session tokens. Tokens carry the
// user ID and an expiry horizon, no session state is persisted.
package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	serviceErrors "github.com/danilovkiri/dk_go_link_resolver/internal/service/errors"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/secretary"
	"github.com/danilovkiri/dk_go_link_resolver/internal/service/session"
)

// Check interface implementation explicitly
var (
	_ session.Registrar = (*Registry)(nil)
)

// Registry struct defines data structure handling and provides support for adding new implementations.
type Registry struct {
	sec   secretary.Secretary
	ttl   time.Duration
	clock func() time.Time
}

// InitRegistry initializes a Registry object with an injectable clock, nil falls back to UTC wall time.
func InitRegistry(sec secretary.Secretary, ttl time.Duration, clock func() time.Time) (*Registry, error) {
	if sec == nil {
		return nil, &serviceErrors.ServiceFoundNilDependency{Msg: "nil secretary was passed to session registry initializer"}
	}
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Registry{sec: sec, ttl: ttl, clock: clock}, nil
}

// Issue returns a ciphered token binding userID to an expiry timestamp.
func (r *Registry) Issue(userID string) string {
	expiresAt := r.clock().Add(r.ttl).Unix()
	return r.sec.Encode(fmt.Sprintf("%s|%d", userID, expiresAt))
}

// Resolve validates a token and returns the session it encodes.
func (r *Registry) Resolve(token string) (session.Session, error) {
	payload, err := r.sec.Decode(token)
	if err != nil {
		return session.Session{}, &serviceErrors.SessionInvalidError{Err: err}
	}
	parts := strings.Split(payload, "|")
	if len(parts) != 2 {
		return session.Session{}, &serviceErrors.SessionInvalidError{}
	}
	expiresAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return session.Session{}, &serviceErrors.SessionInvalidError{Err: err}
	}
	expiresAt := time.Unix(expiresAtUnix, 0).UTC()
	if expiresAt.Before(r.clock()) {
		return session.Session{}, &serviceErrors.SessionExpiredError{}
	}
	return session.Session{UserID: parts[0], ExpiresAt: expiresAt}, nil
}
