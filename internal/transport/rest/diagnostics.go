package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/soletra/backdrop-backend/internal/adapter/sqlite"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// telemetrySource exposes the resolver's last-observed outcome.
type telemetrySource interface {
	Snapshot() domain.Telemetry
}

// eventReader reads persisted telemetry events, newest first.
type eventReader interface {
	Recent(ctx context.Context, n int) ([]sqlite.Entry, error)
}

// DiagnosticsHandler serves the operator telemetry endpoint.
type DiagnosticsHandler struct {
	source    telemetrySource
	events    eventReader
	recentMax int
	log       *slog.Logger
}

// NewDiagnosticsHandler creates a DiagnosticsHandler. events may be nil
// when no event log is configured.
func NewDiagnosticsHandler(source telemetrySource, events eventReader, recentMax int, logger *slog.Logger) *DiagnosticsHandler {
	if recentMax <= 0 {
		recentMax = 100
	}
	return &DiagnosticsHandler{
		source:    source,
		events:    events,
		recentMax: recentMax,
		log:       logger.With("handler", "diagnostics"),
	}
}

type telemetryResponse struct {
	Current domain.Telemetry `json:"current"`
	Events  []sqlite.Entry   `json:"events"`
}

// Telemetry handles GET /admin/diagnostics/telemetry.
func (h *DiagnosticsHandler) Telemetry(w http.ResponseWriter, r *http.Request) {
	resp := telemetryResponse{
		Current: h.source.Snapshot(),
		Events:  []sqlite.Entry{},
	}

	if h.events != nil {
		entries, err := h.events.Recent(r.Context(), h.recentMax)
		if err != nil {
			h.log.ErrorContext(r.Context(), "read event log", slog.String("error", err.Error()))
		} else if entries != nil {
			resp.Events = entries
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
