package preset

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// Activate marks exactly one preset as active. It lists all presets,
// computes which active flags must flip, and issues one mutation per
// flipped preset concurrently, waiting for all before invalidating the
// cache. There is no atomicity across mutations: a crash mid-fan-out can
// leave zero or two presets flagged active, which the activation
// resolver's tie-break tolerates. The common case flips at most two.
func (s *Service) Activate(ctx context.Context, id string) error {
	presets, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("activate %s: %w", id, err)
	}

	found := false
	for _, p := range presets {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("activate %s: %w", id, domain.ErrNotFound)
	}

	g, gctx := errgroup.WithContext(ctx)
	flips := 0
	for _, p := range presets {
		desired := p.ID == id
		if p.IsActive == desired {
			continue
		}
		flips++
		g.Go(func() error {
			fields := []contentstore.Field{{Key: fieldIsActive, Value: strconv.FormatBool(desired)}}
			if err := s.store.Update(gctx, p.ID, fields); err != nil {
				return fmt.Errorf("flip %s to %t: %w", p.ID, desired, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("activate %s: %w", id, err)
	}

	s.log.InfoContext(ctx, "preset activated",
		slog.String("preset_id", id),
		slog.Int("flags_flipped", flips),
	)
	s.bustCache(ctx)
	return nil
}
