package token

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"openboard-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	codec, err := NewCodec(key, DefaultTTL)
	require.NoError(t, err)
	return codec
}

func TestNewCodecRejectsShortKey(t *testing.T) {
	_, err := NewCodec(make([]byte, 16), DefaultTTL)
	assert.Error(t, err)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := testCodec(t)
	now := time.Now()

	tok, expiresAt, err := codec.Issue(42, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultTTL).Unix(), expiresAt.Unix())
	assert.Len(t, strings.Split(tok, "."), 3)

	payload, err := codec.Verify(tok, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, TypeAccess, payload.Type)
	assert.Equal(t, uint(42), payload.UserID)
	assert.Equal(t, expiresAt.Unix(), payload.ExpiresAt)
}

func TestVerifyExpired(t *testing.T) {
	codec := testCodec(t)
	issuedAt := time.Now()

	tok, _, err := codec.Issue(7, issuedAt)
	require.NoError(t, err)

	_, err = codec.Verify(tok, issuedAt.Add(8*24*time.Hour))
	assert.True(t, models.IsCode(err, models.CodeExpiredToken))
}

func TestVerifyTamperedSegments(t *testing.T) {
	codec := testCodec(t)
	tok, _, err := codec.Issue(7, time.Now())
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	// Flipping a single byte of the tag or the ciphertext must fail the
	// AEAD open, not fall through to INVALID or Ok.
	for _, segment := range []int{1, 2} {
		raw, decErr := base64.StdEncoding.DecodeString(parts[segment])
		require.NoError(t, decErr)
		raw[0] ^= 0x01

		tampered := make([]string, 3)
		copy(tampered, parts)
		tampered[segment] = base64.StdEncoding.EncodeToString(raw)

		_, err = codec.Verify(strings.Join(tampered, "."), time.Now())
		var external *models.ExternalError
		require.True(t, errors.As(err, &external), "segment %d", segment)
		assert.Equal(t, "decrypt", external.Op)
	}
}

func TestVerifyMalformedEnvelope(t *testing.T) {
	codec := testCodec(t)

	for _, tok := range []string{
		"",
		"justonesegment",
		"two.segments",
		"a.b.c.d",
		"!!!.!!!.!!!",
	} {
		_, err := codec.Verify(tok, time.Now())
		var external *models.ExternalError
		require.True(t, errors.As(err, &external), "token %q", tok)
		assert.Equal(t, "decrypt", external.Op)
	}
}

func TestVerifyWrongKey(t *testing.T) {
	codec := testCodec(t)

	otherKey := make([]byte, 32)
	for i := range otherKey {
		otherKey[i] = byte(255 - i)
	}
	other, err := NewCodec(otherKey, DefaultTTL)
	require.NoError(t, err)

	tok, _, err := codec.Issue(7, time.Now())
	require.NoError(t, err)

	_, err = other.Verify(tok, time.Now())
	var external *models.ExternalError
	require.True(t, errors.As(err, &external))
	assert.Equal(t, "decrypt", external.Op)
}

func TestVerifyReadableButInvalidPayload(t *testing.T) {
	codec := testCodec(t)

	for _, plaintext := range []string{
		"not json at all",
		`{}`,
		`{"type":"refresh","user_id":7,"expires_at":99999999999}`,
		`{"type":"access","expires_at":99999999999}`,
	} {
		tok, err := codec.seal([]byte(plaintext))
		require.NoError(t, err)

		_, err = codec.Verify(tok, time.Now())
		assert.True(t, models.IsCode(err, models.CodeInvalidToken), "plaintext %q", plaintext)
	}
}
