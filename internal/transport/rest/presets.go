package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soletra/backdrop-backend/internal/domain"
	"github.com/soletra/backdrop-backend/internal/service/preset"
)

// presetService defines the minimal interface needed by PresetHandler.
type presetService interface {
	List(ctx context.Context) ([]domain.BackgroundPreset, error)
	GetByID(ctx context.Context, id string) (*domain.BackgroundPreset, error)
	Create(ctx context.Context, in preset.Input) error
	Update(ctx context.Context, id string, in preset.Input) error
	Delete(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error
}

// PresetHandler serves the admin preset CRUD endpoints.
type PresetHandler struct {
	svc presetService
	log *slog.Logger
}

// NewPresetHandler creates a PresetHandler.
func NewPresetHandler(svc presetService, logger *slog.Logger) *PresetHandler {
	return &PresetHandler{svc: svc, log: logger.With("handler", "presets")}
}

type presetRequest struct {
	Handle                string `json:"handle"`
	Title                 string `json:"title"`
	Slug                  string `json:"slug"`
	HTMLMarkup            string `json:"htmlMarkup"`
	CSSStyles             string `json:"cssStyles"`
	JSSnippet             string `json:"jsSnippet"`
	MotionProfile         string `json:"motionProfile"`
	SupportsReducedMotion bool   `json:"supportsReducedMotion"`
	ThumbnailURL          string `json:"thumbnailUrl"`
}

type presetResponse struct {
	ID                    string  `json:"id"`
	Handle                string  `json:"handle"`
	Title                 string  `json:"title"`
	Slug                  string  `json:"slug"`
	HTMLMarkup            string  `json:"htmlMarkup"`
	CSSStyles             string  `json:"cssStyles"`
	JSSnippet             string  `json:"jsSnippet"`
	MotionProfile         string  `json:"motionProfile"`
	SupportsReducedMotion bool    `json:"supportsReducedMotion"`
	ThumbnailURL          *string `json:"thumbnailUrl,omitempty"`
	IsActive              bool    `json:"isActive"`
	UpdatedAt             string  `json:"updatedAt"`
}

// List handles GET /admin/presets.
func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.svc.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	out := make([]presetResponse, 0, len(presets))
	for i := range presets {
		out = append(out, toPresetResponse(&presets[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"presets": out})
}

// Get handles GET /admin/presets/{id}.
func (h *PresetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "preset not found")
		return
	}
	writeJSON(w, http.StatusOK, toPresetResponse(p))
}

// Create handles POST /admin/presets.
func (h *PresetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Create(r.Context(), toInput(req)); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// Update handles PUT /admin/presets/{id}.
func (h *PresetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.Update(r.Context(), id, toInput(req)); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete handles DELETE /admin/presets/{id}.
func (h *PresetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate handles POST /admin/presets/{id}/activate.
func (h *PresetHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Activate(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func (h *PresetHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "preset not found")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrUpstream):
		h.log.ErrorContext(r.Context(), "upstream store error", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "content store unavailable")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func toInput(req presetRequest) preset.Input {
	return preset.Input{
		Handle:                req.Handle,
		Title:                 req.Title,
		Slug:                  req.Slug,
		HTMLMarkup:            req.HTMLMarkup,
		CSSStyles:             req.CSSStyles,
		JSSnippet:             req.JSSnippet,
		MotionProfile:         domain.MotionProfile(req.MotionProfile),
		SupportsReducedMotion: req.SupportsReducedMotion,
		ThumbnailURL:          req.ThumbnailURL,
	}
}

func toPresetResponse(p *domain.BackgroundPreset) presetResponse {
	return presetResponse{
		ID:                    p.ID,
		Handle:                p.Handle,
		Title:                 p.Title,
		Slug:                  p.Slug,
		HTMLMarkup:            p.HTMLMarkup,
		CSSStyles:             p.CSSStyles,
		JSSnippet:             p.JSSnippet,
		MotionProfile:         p.MotionProfile.String(),
		SupportsReducedMotion: p.SupportsReducedMotion,
		ThumbnailURL:          p.ThumbnailURL,
		IsActive:              p.IsActive,
		UpdatedAt:             p.UpdatedAt,
	}
}
