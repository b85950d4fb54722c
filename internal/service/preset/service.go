package preset

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// contentStore defines the remote store operations the repository needs.
type contentStore interface {
	List(ctx context.Context, pageSize int, cursor string) (*contentstore.Page, error)
	GetByID(ctx context.Context, id string) (*contentstore.Record, error)
	Create(ctx context.Context, fields []contentstore.Field) error
	Update(ctx context.Context, id string, fields []contentstore.Field) error
	Delete(ctx context.Context, id string) error
}

// sanitizer strips script injection vectors from preset markup.
type sanitizer interface {
	Sanitize(html string) string
}

// cacheInvalidator drops the activation cache entry after a mutation.
type cacheInvalidator interface {
	BustCache(ctx context.Context) error
}

// Service validates, sanitizes, and maps presets, delegating persistence to
// the external content store. The store is authoritative; the service never
// caches records itself.
type Service struct {
	log       *slog.Logger
	store     contentStore
	sanitizer sanitizer
	cache     cacheInvalidator
	limits    domain.ContentLimits
	pageSize  int
}

// NewService creates a preset service.
func NewService(
	logger *slog.Logger,
	store contentStore,
	sanitizer sanitizer,
	cache cacheInvalidator,
	limits domain.ContentLimits,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &Service{
		log:       logger.With("service", "preset"),
		store:     store,
		sanitizer: sanitizer,
		cache:     cache,
		limits:    limits,
		pageSize:  pageSize,
	}
}

// List pages through the store in fixed batches following the cursor until
// no next page is reported, and maps every record.
func (s *Service) List(ctx context.Context) ([]domain.BackgroundPreset, error) {
	var presets []domain.BackgroundPreset

	cursor := ""
	for {
		page, err := s.store.List(ctx, s.pageSize, cursor)
		if err != nil {
			return nil, fmt.Errorf("list presets: %w", err)
		}
		for _, rec := range page.Records {
			presets = append(presets, mapRecord(rec))
		}
		if page.NextCursor == "" {
			return presets, nil
		}
		cursor = page.NextCursor
	}
}

// GetByID fetches one preset. Returns nil, nil when it does not exist.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.BackgroundPreset, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get preset %s: %w", id, err)
	}
	if rec == nil {
		return nil, nil
	}
	p := mapRecord(*rec)
	return &p, nil
}

// Create validates and sanitizes the input, then inserts a new record.
func (s *Service) Create(ctx context.Context, in Input) error {
	if err := s.prepare(&in); err != nil {
		return err
	}
	if err := s.store.Create(ctx, in.fields()); err != nil {
		return fmt.Errorf("create preset: %w", err)
	}
	s.bustCache(ctx)
	return nil
}

// Update validates and sanitizes the input, then replaces the record's
// fields.
func (s *Service) Update(ctx context.Context, id string, in Input) error {
	if err := s.prepare(&in); err != nil {
		return err
	}
	if err := s.store.Update(ctx, id, in.fields()); err != nil {
		return fmt.Errorf("update preset %s: %w", id, err)
	}
	s.bustCache(ctx)
	return nil
}

// Delete removes the record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete preset %s: %w", id, err)
	}
	s.bustCache(ctx)
	return nil
}

// prepare runs the shared write-time contract: size ceilings first, then
// markup sanitization. CSS and JS pass through unmodified.
func (s *Service) prepare(in *Input) error {
	if err := in.validate(s.limits); err != nil {
		return err
	}
	in.HTMLMarkup = s.sanitizer.Sanitize(in.HTMLMarkup)
	return nil
}

// bustCache invalidates the activation cache after a successful mutation.
// A failing cache only delays visibility by one TTL, so it is logged but
// never fails the admin operation.
func (s *Service) bustCache(ctx context.Context) {
	if err := s.cache.BustCache(ctx); err != nil {
		s.log.WarnContext(ctx, "activation cache invalidation failed", slog.String("error", err.Error()))
	}
}
