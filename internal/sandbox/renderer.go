package sandbox

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soletra/backdrop-backend/internal/domain"
)

// DefaultLoadTimeout bounds how long a mounted document may take to
// report before the render is declared dead.
const DefaultLoadTimeout = 5 * time.Second

// State is the renderer's position in its lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
	StateError   State = "error"
	StateTimeout State = "timeout"
)

// Renderer mounts one payload at a time into a host and tracks the
// outcome. Rendering a new payload tears the previous mount down first,
// so at most one host and one timer exist at any moment. Terminal states
// are exclusive: once a render has loaded it can no longer time out, and
// vice versa.
type Renderer struct {
	log     *slog.Logger
	newHost HostFactory
	hub     *Hub
	onEvent func(Event)
	timeout time.Duration
	now     func() time.Time

	mu    sync.Mutex
	state State
	host  Host
	timer *time.Timer
	gen   uint64
}

// NewRenderer creates an idle renderer. hub and onEvent may be nil.
func NewRenderer(logger *slog.Logger, newHost HostFactory, hub *Hub, onEvent func(Event), timeout time.Duration) *Renderer {
	if timeout <= 0 {
		timeout = DefaultLoadTimeout
	}
	return &Renderer{
		log:     logger.With("service", "sandbox"),
		newHost: newHost,
		hub:     hub,
		onEvent: onEvent,
		timeout: timeout,
		now:     time.Now,
		state:   StateIdle,
	}
}

// State returns the current lifecycle state.
func (r *Renderer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Render tears down any previous mount, builds the document for the
// payload, and mounts it into a fresh host. The outcome arrives later as
// an event; Render only fails when the host cannot be created or the
// document cannot be mounted.
func (r *Renderer) Render(ctx context.Context, payload domain.ActivePresetPayload) error {
	r.Cleanup()

	host, err := r.newHost()
	if err != nil {
		r.emit(Event{Type: EventError, PresetID: payload.ID, Details: err.Error(), Timestamp: r.now()})
		r.mu.Lock()
		r.state = StateError
		r.mu.Unlock()
		return fmt.Errorf("create host: %w", err)
	}

	doc := BuildDocument(payload)
	if err := host.Mount(ctx, doc); err != nil {
		host.Dispose()
		r.emit(Event{Type: EventError, PresetID: payload.ID, Details: err.Error(), Timestamp: r.now()})
		r.mu.Lock()
		r.state = StateError
		r.mu.Unlock()
		return fmt.Errorf("mount document: %w", err)
	}

	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.state = StateLoading
	r.host = host
	r.timer = time.NewTimer(r.timeout)
	timer := r.timer
	r.mu.Unlock()

	go r.watch(gen, host, timer, payload.ID)

	r.log.InfoContext(ctx, "render started", slog.String("preset_id", payload.ID), slog.String("version", payload.VersionHash))
	return nil
}

// watch waits for the first terminal signal of one render generation.
func (r *Renderer) watch(gen uint64, host Host, timer *time.Timer, presetID string) {
	select {
	case ev, ok := <-host.Events():
		if !ok {
			return
		}
		switch ev.Kind {
		case HostLoaded:
			r.transition(gen, StateLoaded, Event{Type: EventLoad, PresetID: presetID, Timestamp: r.now()})
		case HostErrored:
			r.transition(gen, StateError, Event{Type: EventError, PresetID: presetID, Details: ev.Details, Timestamp: r.now()})
		}
	case <-timer.C:
		details := fmt.Sprintf("Load timeout after %dms", r.timeout.Milliseconds())
		r.transition(gen, StateTimeout, Event{Type: EventTimeout, PresetID: presetID, Details: details, Timestamp: r.now()})
	}
}

// transition applies a terminal state for one generation. Signals from a
// superseded or already-settled render are dropped.
func (r *Renderer) transition(gen uint64, next State, ev Event) {
	r.mu.Lock()
	if r.gen != gen || r.state != StateLoading {
		r.mu.Unlock()
		return
	}
	r.state = next
	if r.timer != nil {
		r.timer.Stop()
	}
	r.mu.Unlock()

	r.emit(ev)
}

// Cleanup returns the renderer to idle from any state: stops the timer,
// invalidates pending watch signals, and disposes the host.
func (r *Renderer) Cleanup() {
	r.mu.Lock()
	r.gen++
	r.state = StateIdle
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	host := r.host
	r.host = nil
	r.mu.Unlock()

	if host != nil {
		host.Dispose()
	}
}

func (r *Renderer) emit(ev Event) {
	if r.onEvent != nil {
		r.onEvent(ev)
	}
	if r.hub != nil {
		r.hub.Publish(ev)
	}
	r.log.Info("render event",
		slog.String("type", string(ev.Type)),
		slog.String("preset_id", ev.PresetID),
		slog.String("details", ev.Details),
	)
}
