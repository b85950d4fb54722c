package activation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soletra/backdrop-backend/internal/adapter/cache"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// cacheKeySuffix is appended to the store identity: one cache entry per
// store, not per preset.
const cacheKeySuffix = ":backdrop:active"

// DefaultTTL is how long a resolved payload is served without consulting
// the upstream store.
const DefaultTTL = 30 * time.Second

// presetLister lists every preset from the authoritative store.
type presetLister interface {
	List(ctx context.Context) ([]domain.BackgroundPreset, error)
}

// sanitizer re-sanitizes markup at read time, defending against records
// mutated out-of-band.
type sanitizer interface {
	Sanitize(html string) string
}

// eventSink optionally persists resolution outcomes for diagnostics.
type eventSink interface {
	Record(ctx context.Context, source string, t domain.Telemetry)
}

// Resolver determines the single active preset, serves it through a
// short-TTL cache keyed by store identity, and degrades to a safe static
// fallback on any failure. Resolve never returns an error: a broken
// upstream must cost the visitor nothing but motion.
type Resolver struct {
	log         *slog.Logger
	presets     presetLister
	cache       cache.Store
	sanitizer   sanitizer
	sink        eventSink
	limits      domain.ContentLimits
	storeDomain string
	ttl         time.Duration
	now         func() time.Time

	mu   sync.Mutex
	last domain.Telemetry
}

// NewResolver creates a resolver. sink may be nil.
func NewResolver(
	logger *slog.Logger,
	presets presetLister,
	store cache.Store,
	sanitizer sanitizer,
	sink eventSink,
	limits domain.ContentLimits,
	storeDomain string,
	ttl time.Duration,
) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		log:         logger.With("service", "activation"),
		presets:     presets,
		cache:       store,
		sanitizer:   sanitizer,
		sink:        sink,
		limits:      limits,
		storeDomain: storeDomain,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Resolve returns the payload for the currently active preset: cached,
// freshly resolved, or a fallback. force skips the cache read (never the
// cache write).
func (r *Resolver) Resolve(ctx context.Context, force bool) domain.ActivePresetPayload {
	key := r.cacheKey()

	if !force {
		entry, err := r.cache.Get(ctx, key)
		if err != nil {
			r.log.WarnContext(ctx, "cache read failed", slog.String("error", err.Error()))
		} else if entry != nil && entry.Fresh(r.now()) {
			r.setTelemetry(ctx, entry.Payload.Status, false)
			return entry.Payload
		}
	}

	payload := r.resolveFresh(ctx)

	entry := cache.Entry{ExpiresAt: r.now().Add(r.ttl).UnixMilli(), Payload: payload}
	if err := r.cache.Set(ctx, key, entry); err != nil {
		r.log.WarnContext(ctx, "cache write failed", slog.String("error", err.Error()))
	}

	return payload
}

// resolveFresh runs the full resolution path. Any failure degrades to the
// fallback payload with the reason recorded in telemetry.
func (r *Resolver) resolveFresh(ctx context.Context) domain.ActivePresetPayload {
	payload, err := r.buildActive(ctx)
	if err != nil {
		tel := domain.Telemetry{
			State:     domain.TelemetryError,
			Reason:    err.Error(),
			Timestamp: r.now(),
		}
		r.setTelemetry(ctx, tel, true)
		r.log.ErrorContext(ctx, "resolution failed, serving fallback", slog.String("reason", tel.Reason))
		return r.fallbackPayload(tel)
	}
	return payload
}

func (r *Resolver) buildActive(ctx context.Context) (domain.ActivePresetPayload, error) {
	presets, err := r.presets.List(ctx)
	if err != nil {
		return domain.ActivePresetPayload{}, fmt.Errorf("list presets: %w", err)
	}

	var active []domain.BackgroundPreset
	for _, p := range presets {
		if p.IsActive {
			active = append(active, p)
		}
	}

	if len(active) == 0 {
		tel := domain.Telemetry{
			State:     domain.TelemetryFallback,
			Reason:    "no-active-preset",
			Timestamp: r.now(),
		}
		r.setTelemetry(ctx, tel, true)
		return r.fallbackPayload(tel), nil
	}

	chosen := pickMostRecent(active)

	// Read-time defense: the record may have been mutated out-of-band
	// since it was written.
	if err := chosen.CheckContentSize(r.limits); err != nil {
		return domain.ActivePresetPayload{}, fmt.Errorf("active preset %s: %w", chosen.ID, err)
	}
	html := r.sanitizer.Sanitize(chosen.HTMLMarkup)

	tel := domain.Telemetry{
		State:     domain.TelemetryOK,
		PresetID:  chosen.ID,
		Timestamp: r.now(),
	}
	r.setTelemetry(ctx, tel, true)

	return domain.ActivePresetPayload{
		ID:                    chosen.ID,
		Handle:                chosen.Handle,
		HTML:                  html,
		CSS:                   chosen.CSSStyles,
		JS:                    chosen.JSSnippet,
		MotionProfile:         chosen.MotionProfile,
		SupportsReducedMotion: chosen.SupportsReducedMotion,
		VersionHash:           domain.VersionHash(chosen.ID, html, chosen.CSSStyles, chosen.JSSnippet, chosen.UpdatedAt),
		UpdatedAt:             chosen.UpdatedAt,
		Status:                tel,
	}, nil
}

// pickMostRecent resolves the multiple-active edge case left behind by a
// partially failed activation: the lexicographically greatest updatedAt
// wins. Correct only because all store timestamps share one fixed
// ISO-8601 format.
func pickMostRecent(active []domain.BackgroundPreset) domain.BackgroundPreset {
	chosen := active[0]
	for _, p := range active[1:] {
		if p.UpdatedAt > chosen.UpdatedAt {
			chosen = p
		}
	}
	return chosen
}

// fallbackPayload is the safe static background served whenever the
// configured preset cannot be.
func (r *Resolver) fallbackPayload(tel domain.Telemetry) domain.ActivePresetPayload {
	return domain.ActivePresetPayload{
		MotionProfile:         domain.MotionStatic,
		SupportsReducedMotion: true,
		VersionHash:           domain.VersionHash("", "", "", "", ""),
		Status:                tel,
	}
}

// BustCache deletes the cache entry for the current store identity.
// Called by every successful preset mutation.
func (r *Resolver) BustCache(ctx context.Context) error {
	return r.cache.Delete(ctx, r.cacheKey())
}

// Snapshot returns a copy of the most recent telemetry.
func (r *Resolver) Snapshot() domain.Telemetry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func (r *Resolver) cacheKey() string {
	return r.storeDomain + cacheKeySuffix
}

// setTelemetry records the latest outcome. Cache hits mirror the embedded
// status into the snapshot but are not persisted, so the event log keeps
// one row per actual resolution.
func (r *Resolver) setTelemetry(ctx context.Context, tel domain.Telemetry, persist bool) {
	r.mu.Lock()
	r.last = tel
	r.mu.Unlock()

	if persist && r.sink != nil {
		r.sink.Record(ctx, "resolver", tel)
	}
}
