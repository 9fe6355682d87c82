package session

import (
	"context"
	"net/http"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	commonhttp "github.com/AlibekovAA/event-registration/internal/common/http"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
)

type contextKey string

const sessionKey contextKey = "session"

// Middleware resolves the session cookie, when present, and stores the live
// session in the request context. Requests without a usable session pass
// through untouched; store failures are answered with 500.
func Middleware(m *Manager, cookies CookieConfig, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := cookies.Token(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := m.Resolve(r.Context(), token)
			if err != nil {
				if IsInvalid(err) {
					log.WithFields(r.Context(), logger.Fields{
						"path":   r.URL.Path,
						"action": "session_rejected",
					}).Debugf("session cookie rejected: %v", err)
					next.ServeHTTP(w, r)
					return
				}
				commonhttp.HandleError(w, r, commonerrors.ErrInternalError.WithCause(err), log)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}

// RequireSession answers 401 unless Middleware attached a session.
func RequireSession(log *logger.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			commonhttp.HandleError(w, r, commonerrors.ErrUnauthorized, log)
			return
		}
		next(w, r)
	}
}
