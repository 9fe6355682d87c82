package domain

import (
	"strings"
	"time"
)

type ID string

type Registration struct {
	EventName    string    `json:"eventName"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type User struct {
	ID            ID             `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	PasswordHash  string         `json:"-"`
	Registrations []Registration `json:"registrations"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Public is the identity subset returned by register and login.
type Public struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Summary is one row of the admin listing.
type Summary struct {
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Registrations []Registration `json:"registrations"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Name: u.Name, Email: u.Email}
}

// WithoutSecrets returns a copy safe to hand to clients: no hash and a non-nil
// registrations slice.
func (u User) WithoutSecrets() User {
	u.PasswordHash = ""
	u.Registrations = CloneRegistrations(u.Registrations)
	return u
}

func (u User) Summary() Summary {
	return Summary{
		Name:          u.Name,
		Email:         u.Email,
		Registrations: CloneRegistrations(u.Registrations),
	}
}

func (u User) HasRegistration(eventName string) bool {
	for _, r := range u.Registrations {
		if r.EventName == eventName {
			return true
		}
	}
	return false
}

func CloneRegistrations(in []Registration) []Registration {
	out := make([]Registration, len(in))
	copy(out, in)
	return out
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

func NormalizeEventName(eventName string) string {
	return strings.TrimSpace(eventName)
}
