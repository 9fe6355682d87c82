package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	commonhttp "github.com/AlibekovAA/event-registration/internal/common/http"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/registration/service"
	"github.com/AlibekovAA/event-registration/internal/session"
	userdomain "github.com/AlibekovAA/event-registration/internal/user/domain"
)

type eventRegisterRequest struct {
	EventName string `json:"eventName"`
}

type eventRegisterResponse struct {
	Message       string                    `json:"message"`
	Registrations []userdomain.Registration `json:"registrations"`
}

type adminListResponse struct {
	Users []userdomain.Summary `json:"users"`
}

type Config struct {
	// AdminToken, when set, guards the admin listing behind a bearer token.
	AdminToken string
	Timeout    time.Duration
}

type Handler struct {
	registrations *service.RegistrationService
	sessions      func(http.Handler) http.Handler
	cfg           Config
	log           *logger.Logger
}

// NewHandler wires the registration endpoints. sessions is the middleware
// that attaches the caller's session to the request context.
func NewHandler(registrations *service.RegistrationService, sessions func(http.Handler) http.Handler, cfg Config, log *logger.Logger) *Handler {
	return &Handler{registrations: registrations, sessions: sessions, cfg: cfg, log: log}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/event/register", h.requirePost(h.sessions(session.RequireSession(h.log, h.registerForEvent))))
	mux.HandleFunc("/api/admin/registrations", h.listRegistrations)
}

func (h *Handler) requirePost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			commonhttp.MethodNotAllowed(w, r, http.MethodPost)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) registerForEvent(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	var req eventRegisterRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"user_id": sess.UserID,
			"action":  "event_register_invalid_json",
		}).Warnf("event registration failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout)
	defer cancel()

	regs, err := h.registrations.RegisterForEvent(ctx, userdomain.ID(sess.UserID), req.EventName)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, eventRegisterResponse{Message: "Registered for event", Registrations: regs})
}

func (h *Handler) listRegistrations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.MethodNotAllowed(w, r, http.MethodGet)
		return
	}

	if !h.adminAuthorized(r) {
		h.log.WithFields(r.Context(), logger.Fields{
			"client_ip": commonhttp.GetClientIP(r),
			"action":    "admin_unauthorized",
		}).Warn("admin listing rejected: bad or missing token")
		commonhttp.HandleError(w, r, commonerrors.ErrUnauthorized, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.Timeout)
	defer cancel()

	users, err := h.registrations.ListAllRegistrations(ctx)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, adminListResponse{Users: users})
}

func (h *Handler) adminAuthorized(r *http.Request) bool {
	if h.cfg.AdminToken == "" {
		return true
	}

	raw := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(raw, "Bearer ")
	if !ok || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.AdminToken)) == 1
}
