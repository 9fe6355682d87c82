package service_test

import (
	"context"
	"time"

	"github.com/AlibekovAA/event-registration/internal/session"
	userdomain "github.com/AlibekovAA/event-registration/internal/user/domain"
	userrepo "github.com/AlibekovAA/event-registration/internal/user/repository"
)

type mockUserRepo struct {
	createFunc             func(ctx context.Context, user userdomain.User) error
	findByEmailFunc        func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc           func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	appendRegistrationFunc func(ctx context.Context, id userdomain.ID, reg userdomain.Registration) ([]userdomain.Registration, error)
	listSummariesFunc      func(ctx context.Context) ([]userdomain.Summary, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) AppendRegistration(ctx context.Context, id userdomain.ID, reg userdomain.Registration) ([]userdomain.Registration, error) {
	if m.appendRegistrationFunc != nil {
		return m.appendRegistrationFunc(ctx, id, reg)
	}
	return []userdomain.Registration{reg}, nil
}

func (m *mockUserRepo) ListSummaries(ctx context.Context) ([]userdomain.Summary, error) {
	if m.listSummariesFunc != nil {
		return m.listSummariesFunc(ctx)
	}
	return nil, nil
}

type mockSessions struct {
	createFunc  func(ctx context.Context, userID string) (session.Session, string, error)
	resolveFunc func(ctx context.Context, token string) (session.Session, error)
	destroyFunc func(ctx context.Context, token string) error
}

func (m *mockSessions) Create(ctx context.Context, userID string) (session.Session, string, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID)
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return session.Session{ID: "sess-1", UserID: userID, CreatedAt: now, ExpiresAt: now.Add(24 * time.Hour)}, "token-" + userID, nil
}

func (m *mockSessions) Resolve(ctx context.Context, token string) (session.Session, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, token)
	}
	return session.Session{}, session.ErrSessionNotFound
}

func (m *mockSessions) Destroy(ctx context.Context, token string) error {
	if m.destroyFunc != nil {
		return m.destroyFunc(ctx, token)
	}
	return nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash string, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "test-id-123", nil
}
