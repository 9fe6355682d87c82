package http

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/event-registration/internal/common/crypto"
)

const traceIDHeader = "X-Trace-ID"

var traceIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// TraceIDMiddleware keeps a well-formed incoming X-Trace-ID or mints one.
func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if !traceIDPattern.MatchString(traceID) {
			traceID = generateTraceID()
		}

		w.Header().Set(traceIDHeader, traceID)

		ctx := context.WithValue(r.Context(), constants.TraceIDKey, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func generateTraceID() string {
	id, err := commoncrypto.RandomToken(16)
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return id
}
