package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/archia-server/internal/model"
)

const typeSession = "session"

// Claims carries the session id in the registered jti claim.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	issuer    string
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager.
//
// Parameters:
//   - secretKey: HMAC key used to sign and verify session tokens
//   - issuer: Value written to the iss claim of every token
//
// Returns a pointer to the newly created JWT instance.
func NewJWT(secretKey, issuer string) *JWT {
	return &JWT{secretKey: secretKey, issuer: issuer}
}

// GenerateSessionToken signs a token that identifies a stored session.
//
// Parameters:
//   - sessionID: ID of the session row, carried in the jti claim
//   - expiresAt: Expiry written to the exp claim
//
// Returns the signed token or an error if sessionID is empty or signing fails.
func (j *JWT) GenerateSessionToken(sessionID uuid.UUID, expiresAt time.Time) (string, error) {
	if sessionID == uuid.Nil {
		return "", errors.New("session id is empty")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		TokenType: typeSession,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates the signature and expiry and returns the session id.
func (j *JWT) ParseSessionToken(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, model.ErrSessionExpired
		}
		return uuid.Nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("session token is invalid")
	}
	if claims.TokenType != typeSession {
		return uuid.Nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}

	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse session id: %w", err)
	}
	return sessionID, nil
}
