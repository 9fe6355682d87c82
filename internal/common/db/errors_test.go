package db

import (
	"errors"
	"strings"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v4"
)

func TestHandleQueryError(t *testing.T) {
	notFound := errors.New("user not found")
	boom := errors.New("connection refused")

	tests := []struct {
		name     string
		err      error
		notFound error
		want     error
	}{
		{"success", nil, notFound, nil},
		{"no rows mapped", pgx.ErrNoRows, notFound, notFound},
		{"no rows without mapping", pgx.ErrNoRows, nil, pgx.ErrNoRows},
		{"other error wrapped", boom, notFound, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleQueryError(tt.err, tt.notFound, "find_user", "users", time.Now())
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want != nil && tt.want != tt.notFound && !strings.HasPrefix(err.Error(), "failed to find_user") {
				t.Errorf("expected operation in error, got %q", err.Error())
			}
		})
	}
}

func TestHandleExecError(t *testing.T) {
	if err := HandleExecError(nil, "create_user", "users", time.Now()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	boom := errors.New("disk full")
	err := HandleExecError(boom, "create_user", "users", time.Now())
	if !errors.Is(err, boom) || err.Error() != "failed to create_user: disk full" {
		t.Errorf("unexpected error: %v", err)
	}
}
