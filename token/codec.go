package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"openboard-api/models"
)

const (
	TypeAccess = "access"

	// DefaultTTL is the fixed access-token lifetime; verification never
	// refreshes it.
	DefaultTTL = 7 * 24 * time.Hour

	nonceSize = 12
	tagSize   = 16
)

// Payload is the plaintext carried inside an issued token.
type Payload struct {
	Type      string `json:"type"`
	UserID    uint   `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

func (p *Payload) Expiry() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

// Codec issues and verifies access tokens as AES-256-GCM envelopes:
// base64(nonce).base64(tag).base64(ciphertext), no associated data.
type Codec struct {
	aead cipher.AEAD
	ttl  time.Duration
}

// NewCodec builds a codec around a 32-byte key. A non-positive ttl falls
// back to DefaultTTL.
func NewCodec(key []byte, ttl time.Duration) (*Codec, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("token key must be 32 bytes, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{aead: aead, ttl: ttl}, nil
}

// Issue mints an access token for userID expiring one lifetime after now.
func (c *Codec) Issue(userID uint, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(c.ttl)
	plaintext, err := json.Marshal(Payload{
		Type:      TypeAccess,
		UserID:    userID,
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return "", time.Time{}, models.NewExternalError("encrypt", err)
	}
	tok, err := c.seal(plaintext)
	if err != nil {
		return "", time.Time{}, models.NewExternalError("encrypt", err)
	}
	return tok, expiresAt, nil
}

func (c *Codec) seal(plaintext []byte) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]
	enc := base64.StdEncoding
	return enc.EncodeToString(nonce) + "." + enc.EncodeToString(tag) + "." + enc.EncodeToString(ciphertext), nil
}

var errMalformedEnvelope = errors.New("token is not a three-segment envelope")

// Verify authenticates and decodes tok relative to now. Failures are
// three-way: an unreadable envelope (wrong segment count, bad base64, tag
// mismatch) is an external "decrypt" error; a readable but malformed
// payload is INVALID; a readable payload past its expiry is EXPIRED.
func (c *Codec) Verify(tok string, now time.Time) (*Payload, error) {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		return nil, models.NewExternalError("decrypt", errMalformedEnvelope)
	}
	enc := base64.StdEncoding
	nonce, err := enc.DecodeString(parts[0])
	if err != nil {
		return nil, models.NewExternalError("decrypt", err)
	}
	tag, err := enc.DecodeString(parts[1])
	if err != nil {
		return nil, models.NewExternalError("decrypt", err)
	}
	ciphertext, err := enc.DecodeString(parts[2])
	if err != nil {
		return nil, models.NewExternalError("decrypt", err)
	}
	if len(nonce) != nonceSize || len(tag) != tagSize {
		return nil, models.NewExternalError("decrypt", errMalformedEnvelope)
	}

	plaintext, err := c.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, models.NewExternalError("decrypt", err)
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, models.NewAppError(models.CodeInvalidToken)
	}
	if payload.Type != TypeAccess || payload.UserID == 0 || payload.ExpiresAt == 0 {
		return nil, models.NewAppError(models.CodeInvalidToken)
	}
	if now.After(payload.Expiry()) {
		return nil, models.NewAppError(models.CodeExpiredToken)
	}
	return &payload, nil
}
