package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/user/domain"
)

func newUser(id, email string, createdAt time.Time) domain.User {
	return domain.User{
		ID:           domain.ID(id),
		Name:         "User " + id,
		Email:        email,
		PasswordHash: "hash-" + id,
		CreatedAt:    createdAt,
	}
}

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, newUser("u1", "a@x.io", now)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	byEmail, err := repo.FindByEmail(ctx, "a@x.io")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if byEmail.ID != "u1" || byEmail.PasswordHash != "hash-u1" {
		t.Errorf("unexpected user: %+v", byEmail)
	}
	if !byEmail.UpdatedAt.Equal(now) {
		t.Errorf("expected updated_at to default to created_at, got %v", byEmail.UpdatedAt)
	}

	byID, err := repo.FindByID(ctx, "u1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if byID.Email != "a@x.io" {
		t.Errorf("expected email a@x.io, got %s", byID.Email)
	}
}

func TestMemoryRepository_NotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "none@x.io"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.AppendRegistration(ctx, "missing", domain.Registration{EventName: "Go"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryRepository_DuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := repo.Create(ctx, newUser("u1", "a@x.io", now)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	err := repo.Create(ctx, newUser("u2", "a@x.io", now))
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	summaries, _ := repo.ListSummaries(ctx)
	if len(summaries) != 1 {
		t.Errorf("expected 1 user, got %d", len(summaries))
	}
}

func TestMemoryRepository_AppendRegistration(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	_ = repo.Create(ctx, newUser("u1", "a@x.io", now))

	regs, err := repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "GopherCon", RegisteredAt: now.Add(time.Minute)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(regs) != 1 || regs[0].EventName != "GopherCon" {
		t.Fatalf("unexpected registrations: %+v", regs)
	}

	regs, err = repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "gophercon", RegisteredAt: now.Add(2 * time.Minute)})
	if err != nil {
		t.Fatalf("expected case-distinct event to succeed, got %v", err)
	}
	if len(regs) != 2 || regs[1].EventName != "gophercon" {
		t.Fatalf("expected append order to be kept, got %+v", regs)
	}

	_, err = repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "GopherCon", RegisteredAt: now.Add(3 * time.Minute)})
	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	user, _ := repo.FindByID(ctx, "u1")
	if len(user.Registrations) != 2 {
		t.Errorf("expected 2 stored registrations, got %d", len(user.Registrations))
	}
	if !user.UpdatedAt.Equal(now.Add(2 * time.Minute)) {
		t.Errorf("expected updated_at to follow last append, got %v", user.UpdatedAt)
	}
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, newUser("u1", "a@x.io", time.Now().UTC()))

	regs, _ := repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "Go"})
	regs[0].EventName = "mutated"

	user, _ := repo.FindByID(ctx, "u1")
	if user.Registrations[0].EventName != "Go" {
		t.Errorf("expected stored registration to be unaffected, got %s", user.Registrations[0].EventName)
	}
}

func TestMemoryRepository_ConcurrentAppendSameEvent(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	_ = repo.Create(ctx, newUser("u1", "a@x.io", time.Now().UTC()))

	const workers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "Go", RegisteredAt: time.Now().UTC()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyRegistered):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != workers-1 {
		t.Errorf("expected 1 success and %d conflicts, got %d and %d", workers-1, successes, conflicts)
	}
}

func TestMemoryRepository_ListSummariesOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("u%d", i)
		_ = repo.Create(ctx, newUser(id, id+"@x.io", base.Add(time.Duration(i)*time.Second)))
	}
	_, _ = repo.AppendRegistration(ctx, "u1", domain.Registration{EventName: "Go"})

	summaries, err := repo.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	for i, s := range summaries {
		want := fmt.Sprintf("u%d@x.io", i)
		if s.Email != want {
			t.Errorf("summary %d: expected %s, got %s", i, want, s.Email)
		}
		if s.Registrations == nil {
			t.Errorf("summary %d: expected non-nil registrations", i)
		}
	}
	if len(summaries[1].Registrations) != 1 {
		t.Errorf("expected u1 to carry one registration, got %d", len(summaries[1].Registrations))
	}
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, newUser("u1", "a@x.io", time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgres://u:p@localhost:5432/app", StorePostgres},
		{"postgresql://localhost/app", StorePostgres},
		{"mongodb://localhost:27017/events", StoreMongo},
		{"mongodb+srv://cluster.example.net/events", StoreMongo},
		{"memory://", StoreMemory},
	}
	for _, tt := range tests {
		got, err := Kind(tt.url)
		if err != nil {
			t.Errorf("Kind(%q): unexpected error %v", tt.url, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}

	if _, err := Kind("mysql://localhost/app"); !errors.Is(err, commonerrors.ErrUnsupportedStore) {
		t.Errorf("expected ErrUnsupportedStore, got %v", err)
	}
}

func TestOpen_Memory(t *testing.T) {
	log := logger.NewWithWriter(io.Discard, "test", "error")
	repo, closeFn, err := Open(context.Background(), log, "memory://")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	defer closeFn(context.Background())

	if _, ok := repo.(*MemoryRepository); !ok {
		t.Errorf("expected *MemoryRepository, got %T", repo)
	}
}

