// Package session provides interfaces for types to be in compliance with.
package session

import (
	"time"
)

// Session maps a resolved token to its user and validity horizon.
type Session struct {
	UserID    string
	ExpiresAt time.Time
}

// Registrar defines a set of methods for types implementing Registrar.
type Registrar interface {
	Issue(userID string) (token string)
	Resolve(token string) (Session, error)
}
