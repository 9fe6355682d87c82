package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

// ErrorResponse is the body of every failed request. Error carries the
// human-readable message the browser client displays.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	TraceID string `json:"trace_id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message, traceID string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Code: code, TraceID: traceID})
}

// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the limit
// installed by MaxRequestSizeMiddleware.
var ErrBodyTooLarge = commonerrors.NewDomainError(
	CodeBodyTooLarge,
	commonerrors.CategoryValidation,
	http.StatusRequestEntityTooLarge,
	"request body too large",
)

// DecodeJSON reads a single JSON object into v, rejecting unknown fields and
// trailing data.
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge.WithCause(err)
		}
		return commonerrors.ErrInvalidJSON.WithCause(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return commonerrors.ErrInvalidJSON
	}
	return nil
}

func GetClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Real-IP")
	if ip == "" {
		ip = r.Header.Get("X-Forwarded-For")
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
	}
	if ip == "" {
		ip = r.RemoteAddr
		if idx := strings.LastIndex(ip, ":"); idx != -1 {
			ip = ip[:idx]
		}
	}
	return ip
}
