package httpmetrics

import "strings"

const (
	staticPathLabel     = "/{static}"
	unknownAPIPathLabel = "/api/{unknown}"
)

var apiRoutes = map[string]struct{}{
	"/api/register":            {},
	"/api/login":               {},
	"/api/logout":              {},
	"/api/me":                  {},
	"/api/event/register":      {},
	"/api/admin/registrations": {},
}

// NormalizePath turns a request path into a low-cardinality metrics label.
// Everything outside /api collapses into one static label since the SPA
// fallback answers arbitrary paths; API paths that match no route share
// one label too.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	if path != "/api" && !strings.HasPrefix(path, "/api/") {
		switch path {
		case "/health", "/metrics":
			return path
		default:
			return staticPathLabel
		}
	}

	if _, ok := apiRoutes[strings.TrimSuffix(path, "/")]; ok {
		return strings.TrimSuffix(path, "/")
	}
	return unknownAPIPathLabel
}
