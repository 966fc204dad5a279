// Package signature implements the shared-key request signing scheme used by
// the mobile client: HMAC-SHA256 over method + path + serialized query +
// serialized body + timestamp, with a client key persisted next to the
// binary and created on first boot.
package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"
)

const (
	ReasonStale   = "stale"
	ReasonInvalid = "invalid_signature"
)

// LoadOrCreateKey reuses the key stored in file, generating a fresh 256-bit
// hex key when none exists yet.
func LoadOrCreateKey(file string) (string, error) {
	if data, err := os.ReadFile(file); err == nil {
		return string(data), nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate client key failed: %w", err)
	}
	key := hex.EncodeToString(raw)

	if err := os.WriteFile(file, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("persist client key failed: %w", err)
	}

	return key, nil
}

// Sign computes the hex HMAC for a request. Query and body are the
// serialized forms the client sends ("{}" for an empty JSON object).
func Sign(key, method, path, query, body string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(key))
	fmt.Fprintf(mac, "%s%s%s%s%d", method, path, query, body, ts)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a supplied signature against the recomputed one and the
// timestamp against the freshness window. The returned reason is empty on
// success, ReasonStale or ReasonInvalid otherwise.
func Verify(key, method, path, query, body, sig string, ts int64, now time.Time, window time.Duration) (bool, string) {
	drift := now.UnixMilli() - ts
	if drift < 0 {
		drift = -drift
	}
	if time.Duration(drift)*time.Millisecond > window {
		return false, ReasonStale
	}

	expected := Sign(key, method, path, query, body, ts)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return false, ReasonInvalid
	}

	return true, ""
}
