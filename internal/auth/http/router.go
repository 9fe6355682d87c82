package http

import (
	"context"
	"net/http"
	"time"

	"github.com/AlibekovAA/event-registration/internal/auth/service"
	commonhttp "github.com/AlibekovAA/event-registration/internal/common/http"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/session"
	userdomain "github.com/AlibekovAA/event-registration/internal/user/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string            `json:"message"`
	User    userdomain.Public `json:"user"`
}

type meResponse struct {
	User *userdomain.User `json:"user"`
}

type Handler struct {
	auth    *service.AuthService
	cookies session.CookieConfig
	timeout time.Duration
	log     *logger.Logger
}

func NewHandler(auth *service.AuthService, cookies session.CookieConfig, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{auth: auth, cookies: cookies, timeout: timeout, log: log}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/register", h.register)
	mux.HandleFunc("/api/login", h.login)
	mux.HandleFunc("/api/logout", h.logout)
	mux.HandleFunc("/api/me", h.me)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.MethodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "register_invalid_json"}).Warnf("register failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.dropPreviousSession(ctx, r, "register")
	h.cookies.Set(w, result.Token)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{Message: "Registered successfully", User: result.User})
}

// dropPreviousSession destroys the session the browser held before a
// successful register or login replaces it.
func (h *Handler) dropPreviousSession(ctx context.Context, r *http.Request, flow string) {
	old := h.cookies.Token(r)
	if old == "" {
		return
	}
	if err := h.auth.Logout(ctx, old); err != nil {
		h.log.WithFields(ctx, logger.Fields{"action": flow + "_old_session_cleanup_failed"}).Warnf("failed to drop previous session: %v", err)
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.MethodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_json"}).Warnf("login failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.dropPreviousSession(ctx, r, "login")
	h.cookies.Set(w, result.Token)
	commonhttp.WriteJSON(w, http.StatusOK, authResponse{Message: "Logged in", User: result.User})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.MethodNotAllowed(w, r, http.MethodPost)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.auth.Logout(ctx, h.cookies.Token(r)); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	h.cookies.Clear(w)
	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "Logged out"})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.MethodNotAllowed(w, r, http.MethodGet)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.auth.CurrentUser(ctx, h.cookies.Token(r))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, meResponse{User: user})
}
