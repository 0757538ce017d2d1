// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/danilovkiri/dk_go_link_resolver/internal/service/session"
)

// CookieName is the session cookie identifier shared by the middleware and the session endpoint.
const CookieName = "resolver_session"

type contextKey int

const userIDKey contextKey = iota

// CookieHandler sets object structure.
type CookieHandler struct {
	registrar session.Registrar
}

// NewCookieHandler initializes a new cookie handler.
func NewCookieHandler(registrar session.Registrar) (*CookieHandler, error) {
	if registrar == nil {
		return nil, errors.New("nil Session Registrar was passed to cookie handler initializer")
	}
	return &CookieHandler{registrar: registrar}, nil
}

// CookieHandle resolves the session cookie when present and stashes the user ID in the request
// context. Requests without a cookie, or with an invalid or expired one, pass through anonymously;
// owner-gated handlers decide whether anonymity is acceptable.
func (c *CookieHandler) CookieHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err == nil {
			s, err := c.registrar.Resolve(cookie.Value)
			if err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, s.UserID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// UserID extracts the session user ID stashed by CookieHandle, the second value reports presence.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
