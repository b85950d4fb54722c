package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ActivePresetPayload is the transient shape served to storefront visitors.
// It is derived on every resolution and lives no longer than the cache TTL.
type ActivePresetPayload struct {
	ID                    string        `json:"id"`
	Handle                string        `json:"handle"`
	HTML                  string        `json:"html"`
	CSS                   string        `json:"css"`
	JS                    string        `json:"js"`
	MotionProfile         MotionProfile `json:"motionProfile"`
	SupportsReducedMotion bool          `json:"supportsReducedMotion"`
	VersionHash           string        `json:"versionHash"`
	UpdatedAt             string        `json:"updatedAt"`
	Status                Telemetry     `json:"status"`
}

// VersionHash computes the content-addressed fingerprint of a preset's
// rendered fields: a hex SHA-256 digest over id|html|css|js|updatedAt.
func VersionHash(id, html, css, js, updatedAt string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{id, html, css, js, updatedAt}, "|")))
	return hex.EncodeToString(sum[:])
}
