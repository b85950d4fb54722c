package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/soletra/backdrop-backend/internal/auth"
)

// tokenIssuer mints admin session tokens.
type tokenIssuer interface {
	Issue(subject string) (token string, expiresAt time.Time, err error)
}

// SessionHandler serves the admin login endpoint. Authentication is a
// single shared admin key; a correct key buys a short-lived signed token.
type SessionHandler struct {
	issuer   tokenIssuer
	adminKey string
	log      *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(issuer tokenIssuer, adminKey string, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{issuer: issuer, adminKey: adminKey, log: logger.With("handler", "session")}
}

type sessionRequest struct {
	AdminKey string `json:"adminKey"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Create handles POST /admin/session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !auth.SecureCompare(req.AdminKey, h.adminKey) {
		h.log.WarnContext(r.Context(), "admin login rejected")
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, expiresAt, err := h.issuer.Issue("admin")
	if err != nil {
		h.log.ErrorContext(r.Context(), "issue token", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: expiresAt})
}
