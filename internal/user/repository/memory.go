package repository

import (
	"context"
	"sync"

	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

// MemoryRepository keeps users in process memory. It backs memory:// store
// URLs for local development and the HTTP tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	users   map[domain.ID]domain.User
	byEmail map[string]domain.ID
	order   []domain.ID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:   make(map[domain.ID]domain.User),
		byEmail: make(map[string]domain.ID),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailAlreadyExists
	}

	user.Registrations = domain.CloneRegistrations(user.Registrations)
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	r.users[user.ID] = user
	r.byEmail[user.Email] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if err := ctx.Err(); err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[id]; !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) AppendRegistration(ctx context.Context, id domain.ID, reg domain.Registration) ([]domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if user.HasRegistration(reg.EventName) {
		return nil, ErrAlreadyRegistered
	}

	user.Registrations = append(domain.CloneRegistrations(user.Registrations), reg)
	user.UpdatedAt = reg.RegisteredAt
	r.users[id] = user

	return domain.CloneRegistrations(user.Registrations), nil
}

func (r *MemoryRepository) ListSummaries(ctx context.Context) ([]domain.Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]domain.Summary, 0, len(r.order))
	for _, id := range r.order {
		summaries = append(summaries, r.users[id].Summary())
	}
	return summaries, nil
}

func (r *MemoryRepository) copyOf(id domain.ID) domain.User {
	user := r.users[id]
	user.Registrations = domain.CloneRegistrations(user.Registrations)
	return user
}
