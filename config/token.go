package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"
)

// TokenConfig carries the AEAD key and lifetime for access tokens. The key
// is decoded once at startup and handed to the codec; it is never logged
// and never kept in package state.
type TokenConfig struct {
	Key []byte
	TTL time.Duration
}

// LoadToken reads TOKEN_SECRET (base64, must decode to 32 bytes) and the
// optional TOKEN_TTL duration.
func LoadToken() (TokenConfig, error) {
	raw := os.Getenv("TOKEN_SECRET")
	if raw == "" {
		return TokenConfig{}, fmt.Errorf("TOKEN_SECRET is not set")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return TokenConfig{}, fmt.Errorf("TOKEN_SECRET is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return TokenConfig{}, fmt.Errorf("TOKEN_SECRET must decode to 32 bytes, got %d", len(key))
	}

	ttl := 7 * 24 * time.Hour
	if rawTTL := os.Getenv("TOKEN_TTL"); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil {
			return TokenConfig{}, fmt.Errorf("TOKEN_TTL: %w", err)
		}
		ttl = parsed
	}

	return TokenConfig{Key: key, TTL: ttl}, nil
}
