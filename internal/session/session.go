// Package session binds an opaque browser cookie to a user id with an expiry.
// Session records live in Redis; the cookie carries a signed token naming
// the record.
package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidToken     = errors.New("invalid session token")
	ErrStoreUnavailable = errors.New("session store unavailable")
)

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Store interface {
	Save(ctx context.Context, sess Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (Session, error)
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error
}
