package auth

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Signer abstracts the signature primitive so the token logic does not
// depend on a concrete crypto API.
type Signer interface {
	Sign(key, data []byte) []byte
	Verify(key, data, sig []byte) bool
}

// HMACSigner signs with HMAC-SHA256.
type HMACSigner struct{}

func (HMACSigner) Sign(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

func (HMACSigner) Verify(key, data, sig []byte) bool {
	return hmac.Equal(sig, HMACSigner{}.Sign(key, data))
}
