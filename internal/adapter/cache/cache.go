// Package cache provides the key/value store behind the activation
// resolver. Entries are last-writer-wins; there is no locking or CAS, so
// a reader racing an invalidation may observe a miss, which only costs
// one extra upstream resolution.
package cache

import (
	"context"
	"time"

	"github.com/soletra/backdrop-backend/internal/domain"
)

// Entry is a cached resolution result. ExpiresAt is epoch milliseconds;
// an entry expired exactly at now is already stale.
type Entry struct {
	ExpiresAt int64                      `json:"expiresAt"`
	Payload   domain.ActivePresetPayload `json:"payload"`
}

// Fresh reports whether the entry is still servable at the given instant.
func (e *Entry) Fresh(now time.Time) bool {
	return e.ExpiresAt > now.UnixMilli()
}

// Store is the minimal key/value contract the resolver needs.
// Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
}
