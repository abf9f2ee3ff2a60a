package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/archia-server/internal/model"
)

func TestJWT_SessionToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret", "archia")
	id := uuid.New()

	tok, err := j.GenerateSessionToken(id, time.Now().Add(time.Hour))
	require.NoError(t, err)
	got, err := j.ParseSessionToken(tok)
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestJWT_NilSessionID(t *testing.T) {
	j := NewJWT("secret", "archia")

	_, err := j.GenerateSessionToken(uuid.Nil, time.Now().Add(time.Hour))
	require.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	j := NewJWT("secret", "archia")

	tok, err := j.GenerateSessionToken(uuid.New(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = j.ParseSessionToken(tok)
	assert.ErrorIs(t, err, model.ErrSessionExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret", "archia").GenerateSessionToken(uuid.New(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = NewJWT("other", "archia").ParseSessionToken(tok)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	_, err := NewJWT("secret", "archia").ParseSessionToken("not-a-token")
	require.Error(t, err)
}

func TestJWT_TokenType_Mismatch(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		TokenType: "refresh",
	})
	signed, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWT("secret", "archia").ParseSessionToken(signed)
	require.Error(t, err)
}

func TestJWT_RejectsNoneAlgorithm(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: uuid.NewString()},
		TokenType:        typeSession,
	})
	signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT("secret", "archia").ParseSessionToken(signed)
	require.Error(t, err)
}
