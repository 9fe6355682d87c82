package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

// Repository is the credential store. Emails passed in are already normalized.
type Repository interface {
	Create(ctx context.Context, user domain.User) error
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	// AppendRegistration appends reg unless the user already holds a
	// registration with the same event name. The check and the append are
	// one atomic store operation. It returns the full updated sequence.
	AppendRegistration(ctx context.Context, id domain.ID, reg domain.Registration) ([]domain.Registration, error)
	ListSummaries(ctx context.Context) ([]domain.Summary, error)
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrAlreadyRegistered  = errors.New("already registered for event")
)
