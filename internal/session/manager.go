package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlibekovAA/event-registration/internal/common/clock"
	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/event-registration/internal/common/crypto"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/observability/metrics"
)

type ManagerDeps struct {
	Store       Store
	Signer      *TokenSigner
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type Manager struct {
	store       Store
	signer      *TokenSigner
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
	ttl         time.Duration
}

func NewManager(deps ManagerDeps, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Manager{
		store:       deps.Store,
		signer:      deps.Signer,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
		ttl:         ttl,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create opens a session for userID and returns the signed cookie token.
func (m *Manager) Create(ctx context.Context, userID string) (Session, string, error) {
	id, err := m.idGenerator.NewID()
	if err != nil {
		return Session{}, "", fmt.Errorf("failed to generate session id: %w", err)
	}

	now := m.clock.Now()
	sess := Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return Session{}, "", err
	}

	token, err := m.signer.Sign(sess)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return Session{}, "", err
	}

	metrics.SessionsCreatedTotal.Inc()
	m.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"action":  "session_created",
	}).Debug("session created")

	return sess, token, nil
}

// Resolve maps a cookie token to its live session. Tokens that fail
// verification or name a missing or expired record yield ErrSessionNotFound,
// ErrSessionExpired or ErrInvalidToken. Store failures wrap ErrStoreUnavailable.
func (m *Manager) Resolve(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrSessionNotFound
	}

	now := m.clock.Now()
	sessionID, userID, err := m.signer.Parse(token, now)
	if err != nil {
		metrics.SessionValidationsFailed.WithLabelValues(reason(err)).Inc()
		return Session{}, err
	}

	sess, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			metrics.SessionValidationsFailed.WithLabelValues(reason(err)).Inc()
		}
		return Session{}, err
	}

	if sess.UserID != userID {
		metrics.SessionValidationsFailed.WithLabelValues(reason(ErrInvalidToken)).Inc()
		return Session{}, ErrInvalidToken
	}
	if sess.Expired(now) {
		metrics.SessionValidationsFailed.WithLabelValues(reason(ErrSessionExpired)).Inc()
		return Session{}, ErrSessionExpired
	}

	return sess, nil
}

// Destroy deletes the session named by token. Tokens that do not verify
// name nothing to delete and succeed.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	// Expired tokens still name a record worth removing, so expiry is not
	// checked here.
	sessionID, _, err := m.signer.Parse(token, time.Time{})
	if err != nil {
		return nil
	}

	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	metrics.SessionsDestroyedTotal.Inc()
	return nil
}

// IsInvalid reports whether err means "no usable session" rather than an
// infrastructure failure.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrInvalidToken)
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrSessionExpired):
		return "expired"
	case errors.Is(err, ErrSessionNotFound):
		return "not_found"
	default:
		return "invalid"
	}
}
