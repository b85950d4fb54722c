// Package sandbox renders active preset payloads inside an isolated host
// page and tracks the outcome through a small state machine.
package sandbox

import "time"

// EventType classifies a render outcome.
type EventType string

const (
	EventLoad    EventType = "load"
	EventError   EventType = "error"
	EventTimeout EventType = "timeout"
)

// Event is one observed render outcome for a preset.
type Event struct {
	Type      EventType `json:"type"`
	PresetID  string    `json:"presetId,omitempty"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
