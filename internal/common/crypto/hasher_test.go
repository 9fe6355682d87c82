package crypto

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "pw123" {
		t.Fatal("expected hash to differ from plaintext")
	}

	if err := h.Compare(hash, "pw123"); err != nil {
		t.Errorf("expected matching password, got %v", err)
	}

	if err := h.Compare(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, _ := h.Hash("same-password")
	second, _ := h.Hash("same-password")
	if first == second {
		t.Error("expected different hashes for the same password")
	}
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	testCases := []int{0, 1, bcrypt.MaxCost + 1}

	for _, cost := range testCases {
		if got := NewBcryptHasher(cost).Cost(); got != constants.DefaultBcryptCost {
			t.Errorf("cost %d: expected fallback %d, got %d", cost, constants.DefaultBcryptCost, got)
		}
	}
}

func TestUUIDGenerator_NewID(t *testing.T) {
	g := NewUUIDGenerator()

	a, err := g.NewID()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := g.NewID()

	if len(a) != 36 {
		t.Errorf("expected 36 character uuid, got %q", a)
	}
	if a == b {
		t.Error("expected unique ids")
	}
}

func TestRandomToken(t *testing.T) {
	token, err := RandomToken(16)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(token) != 32 {
		t.Errorf("expected 32 hex chars, got %d", len(token))
	}
}
