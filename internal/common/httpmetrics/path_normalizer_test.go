package httpmetrics

import (
	"fmt"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api/register", "/api/register"},
		{"/api/me/", "/api/me"},
		{"/api/event/register", "/api/event/register"},
		{"/api/admin/registrations", "/api/admin/registrations"},
		{"/api", unknownAPIPathLabel},
		{"/api/users/0b6f1c2e-8a41-4c1f-9f2d-3c4b5a697887", unknownAPIPathLabel},
		{"/api/items/42", unknownAPIPathLabel},
		{"/api/wp-login.php", unknownAPIPathLabel},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/index.html", staticPathLabel},
		{"/some/client/route", staticPathLabel},
		{"/apiary", staticPathLabel},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNormalizePath_BoundedAPILabels(t *testing.T) {
	labels := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		labels[NormalizePath(fmt.Sprintf("/api/scan-%d/x%d", i, i))] = struct{}{}
	}
	if len(labels) != 1 {
		t.Errorf("expected random API paths to share one label, got %d labels", len(labels))
	}
}
