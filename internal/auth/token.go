package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Namespace is embedded in every issued token so that a token minted for
// the admin session feature cannot be replayed against an unrelated
// token-consuming endpoint.
const Namespace = "backdrop-admin-session"

// DefaultTokenTTL bounds the blast radius of a leaked token without
// requiring revocation infrastructure.
const DefaultTokenTTL = 30 * time.Minute

// Token verification failures. All of them map to a single unauthorized
// outward response; the distinct values exist for caller-side diagnostics.
var (
	ErrInvalidFormat    = errors.New("token: invalid format")
	ErrInvalidSignature = errors.New("token: invalid signature")
	ErrInvalidNamespace = errors.New("token: invalid namespace")
	ErrExpired          = errors.New("token: expired")
)

// TokenPayload is the signed content of an admin session token.
// IssuedAt and ExpiresAt are epoch milliseconds.
type TokenPayload struct {
	Sub       string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Nonce     string `json:"nonce"`
	Namespace string `json:"namespace"`
}

// TokenService issues and verifies short-lived signed admin session tokens.
// Operations are single-shot computations with no shared mutable state and
// are safe for concurrent use.
type TokenService struct {
	signer Signer
	key    []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService derives the signing key from the combination of the
// standalone admin key and the session secret, so neither secret alone
// can mint tokens.
func NewTokenService(adminKey, sessionSecret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		signer: HMACSigner{},
		key:    deriveKey(adminKey, sessionSecret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func deriveKey(adminKey, sessionSecret string) []byte {
	h := sha256.New()
	h.Write([]byte(adminKey))
	h.Write([]byte{0})
	h.Write([]byte(sessionSecret))
	return h.Sum(nil)
}

// Issue creates a signed token for the given subject. No server-side state
// is stored; the token is self-contained.
func (s *TokenService) Issue(subject string) (token string, expiresAt time.Time, err error) {
	now := s.now()
	expiresAt = now.Add(s.ttl)

	payload := TokenPayload{
		Sub:       subject,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
		Nonce:     uuid.NewString(),
		Namespace: Namespace,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("marshal payload: %w", err)
	}

	sig := s.signer.Sign(s.key, raw)
	token = base64.RawURLEncoding.EncodeToString(raw) + "." + base64.RawURLEncoding.EncodeToString(sig)
	return token, expiresAt, nil
}

// Verify checks format, signature, namespace, and expiry, in that order,
// and returns the decoded payload on success.
func (s *TokenService) Verify(token string) (*TokenPayload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidFormat
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidFormat
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if !s.signer.Verify(s.key, raw, sig) {
		return nil, ErrInvalidSignature
	}

	var payload TokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, ErrInvalidFormat
	}

	if payload.Namespace != Namespace {
		return nil, ErrInvalidNamespace
	}
	if payload.ExpiresAt <= s.now().UnixMilli() {
		return nil, ErrExpired
	}

	return &payload, nil
}

// ExtractBearer parses an Authorization header value of the form
// "Bearer <token>". The prefix match is case-insensitive. Returns an empty
// string when absent or malformed; the "missing token" error belongs to
// the caller.
func ExtractBearer(headerValue string) string {
	parts := strings.SplitN(strings.TrimSpace(headerValue), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
