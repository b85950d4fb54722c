package middleware

import (
	"log/slog"
	"net/http"

	"github.com/soletra/backdrop-backend/internal/auth"
	"github.com/soletra/backdrop-backend/pkg/ctxutil"
)

type tokenVerifier interface {
	Verify(token string) (*auth.TokenPayload, error)
}

// Auth returns middleware that requires a valid bearer token. Every
// failure class maps to 401 with the same body; the precise class is
// only logged.
func Auth(verifier tokenVerifier, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractBearer(r.Header.Get("Authorization"))
			if token == "" {
				logger.WarnContext(r.Context(), "missing bearer token",
					slog.String("path", r.URL.Path))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			payload, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "token rejected",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()))
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := ctxutil.WithSubject(r.Context(), payload.Sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
