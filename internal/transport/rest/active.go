package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/soletra/backdrop-backend/internal/domain"
)

// activationResolver resolves the payload served to visitors.
type activationResolver interface {
	Resolve(ctx context.Context, force bool) domain.ActivePresetPayload
}

// ActiveHandler serves the public active-preset endpoint. It always
// answers 200: a degraded upstream shows up in the payload's embedded
// status, never as an HTTP error.
type ActiveHandler struct {
	resolver activationResolver
	log      *slog.Logger
}

// NewActiveHandler creates an ActiveHandler.
func NewActiveHandler(resolver activationResolver, logger *slog.Logger) *ActiveHandler {
	return &ActiveHandler{resolver: resolver, log: logger.With("handler", "active")}
}

// Get handles GET /backdrop/active. The refresh query parameter skips the
// cache read.
func (h *ActiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "1"
	payload := h.resolver.Resolve(r.Context(), force)
	writeJSON(w, http.StatusOK, payload)
}
