// Command backdropsvc runs the background preset service: the admin
// preset API, the public active-preset endpoint, and health probes.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/soletra/backdrop-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("backdropsvc: %v", err)
	}
}
