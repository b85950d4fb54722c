// Command mint-token mints an admin session token from the configured
// secrets. It is an operator escape hatch for scripting against the
// admin API without going through the login endpoint.
//
// Usage:
//
//	mint-token --subject=admin --ttl=30m
//
// Requires AUTH_ADMIN_KEY and AUTH_SESSION_SECRET environment variables.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/soletra/backdrop-backend/internal/auth"
)

func main() {
	subject := flag.String("subject", "admin", "token subject")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "token lifetime")
	flag.Parse()

	adminKey := os.Getenv("AUTH_ADMIN_KEY")
	sessionSecret := os.Getenv("AUTH_SESSION_SECRET")
	if adminKey == "" || sessionSecret == "" {
		log.Fatal("AUTH_ADMIN_KEY and AUTH_SESSION_SECRET environment variables are required")
	}

	tokens := auth.NewTokenService(adminKey, sessionSecret, *ttl)
	token, expiresAt, err := tokens.Issue(*subject)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
}
