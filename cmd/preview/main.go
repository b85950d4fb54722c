// Command preview resolves the currently active preset and renders it once
// through a real browser sandbox, printing the load outcome. It is meant
// for smoke-testing a preset end to end before pointing a storefront at it.
//
// Usage:
//
//	preview [--refresh] [--timeout=10s]
//
// Uses the same configuration as backdropsvc. With --refresh the cached
// payload is bypassed and the preset is resolved fresh from the store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soletra/backdrop-backend/internal/adapter/cache"
	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/adapter/sqlite"
	"github.com/soletra/backdrop-backend/internal/app"
	"github.com/soletra/backdrop-backend/internal/config"
	"github.com/soletra/backdrop-backend/internal/domain"
	"github.com/soletra/backdrop-backend/internal/sandbox"
	"github.com/soletra/backdrop-backend/internal/sandbox/rodhost"
	"github.com/soletra/backdrop-backend/internal/sanitize"
	"github.com/soletra/backdrop-backend/internal/service/activation"
	"github.com/soletra/backdrop-backend/internal/service/preset"
)

// noopBuster satisfies the preset service's cache invalidator for a
// one-shot run that never mutates presets.
type noopBuster struct{}

func (noopBuster) BustCache(context.Context) error { return nil }

// sink adapts the optional event log for the resolver without producing
// a typed-nil interface.
func sink(l *sqlite.EventLog) interface {
	Record(ctx context.Context, source string, t domain.Telemetry)
} {
	if l == nil {
		return nil
	}
	return l
}

func main() {
	refresh := flag.Bool("refresh", false, "bypass the payload cache")
	timeout := flag.Duration("timeout", 10*time.Second, "overall deadline for the preview")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	limits := domain.ContentLimits{
		MaxHTML: cfg.Preset.MaxHTMLChars,
		MaxCSS:  cfg.Preset.MaxCSSChars,
		MaxJS:   cfg.Preset.MaxJSChars,
	}

	var eventLog *sqlite.EventLog
	if cfg.Telemetry.SQLitePath != "" {
		eventLog, err = sqlite.Open(logger, cfg.Telemetry.SQLitePath)
		if err != nil {
			log.Fatalf("open telemetry event log: %v", err)
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
	presetSvc := preset.NewService(logger, storeClient, markup, noopBuster{}, limits, cfg.ContentStore.PageSize)
	resolver := activation.NewResolver(
		logger, presetSvc, cache.NewMemory(), markup, sink(eventLog),
		limits, cfg.ContentStore.StoreDomain, cfg.Cache.TTL,
	)

	payload := resolver.Resolve(ctx, *refresh)
	fmt.Printf("resolved preset %q (state %s, version %s)\n", payload.ID, payload.Status.State, payload.VersionHash)
	if payload.Status.Reason != "" {
		fmt.Printf("degraded: %s\n", payload.Status.Reason)
	}

	done := make(chan sandbox.Event, 1)
	renderer := sandbox.NewRenderer(
		logger,
		rodhost.Factory(logger, cfg.Sandbox.BrowserURL),
		sandbox.NewHub(),
		func(ev sandbox.Event) { done <- ev },
		cfg.Sandbox.LoadTimeout,
	)
	defer renderer.Cleanup()

	if err := renderer.Render(ctx, payload); err != nil {
		log.Fatalf("render: %v", err)
	}

	select {
	case ev := <-done:
		if eventLog != nil {
			eventLog.RecordRender(ctx, ev)
		}
		fmt.Printf("render %s", ev.Type)
		if ev.Details != "" {
			fmt.Printf(": %s", ev.Details)
		}
		fmt.Println()
		if ev.Type != sandbox.EventLoad {
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Fatal("preview deadline exceeded before the sandbox reported")
	}
}
