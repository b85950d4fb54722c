package domain

import "time"

// TelemetryState is the last-observed outcome of resolving or rendering
// a preset.
type TelemetryState string

const (
	TelemetryOK       TelemetryState = "ok"
	TelemetryFallback TelemetryState = "fallback"
	TelemetryError    TelemetryState = "error"
)

// Telemetry records one resolution or render outcome. It is a plain value
// threaded through resolver and renderer calls; callers that need the
// latest outcome read a snapshot, never a shared mutable global.
type Telemetry struct {
	State     TelemetryState `json:"state"`
	Reason    string         `json:"reason,omitempty"`
	PresetID  string         `json:"presetId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
