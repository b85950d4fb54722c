package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soletra/backdrop-backend/internal/adapter/cache"
	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/adapter/sqlite"
	"github.com/soletra/backdrop-backend/internal/auth"
	"github.com/soletra/backdrop-backend/internal/config"
	"github.com/soletra/backdrop-backend/internal/domain"
	"github.com/soletra/backdrop-backend/internal/sanitize"
	"github.com/soletra/backdrop-backend/internal/service/activation"
	"github.com/soletra/backdrop-backend/internal/service/preset"
	"github.com/soletra/backdrop-backend/internal/transport/middleware"
	"github.com/soletra/backdrop-backend/internal/transport/rest"
)

// cacheStore is the full cache surface the app wires: storage plus the
// health ping.
type cacheStore interface {
	cache.Store
	Ping(ctx context.Context) error
}

// lateBoundBuster breaks the construction cycle between the preset
// service and the resolver: the service needs an invalidator before the
// resolver (which needs the service) exists.
type lateBoundBuster struct {
	resolver *activation.Resolver
}

func (b *lateBoundBuster) BustCache(ctx context.Context) error {
	if b.resolver == nil {
		return nil
	}
	return b.resolver.BustCache(ctx)
}

// Run is the application entry point. It loads configuration, wires the
// cache, content store, services, and HTTP transport, and serves until
// the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	limits := domain.ContentLimits{
		MaxHTML: cfg.Preset.MaxHTMLChars,
		MaxCSS:  cfg.Preset.MaxCSSChars,
		MaxJS:   cfg.Preset.MaxJSChars,
	}

	store := newCacheStore(ctx, logger, cfg.Cache)

	var eventLog *sqlite.EventLog
	if cfg.Telemetry.SQLitePath != "" {
		eventLog, err = sqlite.Open(logger, cfg.Telemetry.SQLitePath)
		if err != nil {
			return fmt.Errorf("open telemetry event log: %w", err)
		}
		defer eventLog.Close()
	}

	storeClient := contentstore.NewClient(
		cfg.ContentStore.Endpoint,
		cfg.ContentStore.AccessToken,
		cfg.ContentStore.RecordType,
		logger,
	)

	markup := sanitize.NewMarkup()
	tokens := auth.NewTokenService(cfg.Auth.AdminKey, cfg.Auth.SessionSecret, cfg.Auth.TokenTTL)

	buster := &lateBoundBuster{}
	presetSvc := preset.NewService(logger, storeClient, markup, buster, limits, cfg.ContentStore.PageSize)

	resolver := activation.NewResolver(
		logger,
		presetSvc,
		store,
		markup,
		sink(eventLog),
		limits,
		cfg.ContentStore.StoreDomain,
		cfg.Cache.TTL,
	)
	buster.resolver = resolver

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger:      logger,
		CORS:        cfg.CORS,
		LoginPerMin: cfg.Auth.LoginPerMin,
		Tokens:      tokens,
		RateLimiter: rateLimiter,
		Session:     rest.NewSessionHandler(tokens, cfg.Auth.AdminKey, logger),
		Presets:     rest.NewPresetHandler(presetSvc, logger),
		Active:      rest.NewActiveHandler(resolver, logger),
		Diagnostics: rest.NewDiagnosticsHandler(resolver, reader(eventLog), cfg.Telemetry.RecentMax, logger),
		Health:      rest.NewHealthHandler(store, storeClient, BuildVersion()),
	})

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newCacheStore connects to Redis when configured, falling back to the
// in-process cache so a missing Redis never blocks startup.
func newCacheStore(ctx context.Context, logger *slog.Logger, cfg config.CacheConfig) cacheStore {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory activation cache")
		return cache.NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, falling back to in-memory cache",
			slog.String("addr", cfg.RedisAddr),
			slog.String("error", err.Error()),
		)
		return cache.NewMemory()
	}

	logger.Info("using redis activation cache", slog.String("addr", cfg.RedisAddr))
	return cache.NewRedis(client)
}

// sink adapts the optional event log for the resolver without a typed-nil
// interface.
func sink(l *sqlite.EventLog) interface {
	Record(ctx context.Context, source string, t domain.Telemetry)
} {
	if l == nil {
		return nil
	}
	return l
}

// reader adapts the optional event log for the diagnostics handler.
func reader(l *sqlite.EventLog) interface {
	Recent(ctx context.Context, n int) ([]sqlite.Entry, error)
} {
	if l == nil {
		return nil
	}
	return l
}
