package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetClaims carries the identity a password-recovery token was
// issued for.
type ResetClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and validates password-recovery tokens. Each token
// is signed with the server secret concatenated with the user's
// current password hash, so changing the password invalidates every
// outstanding token without server-side state.
type Manager struct {
	secret string
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

func (m *Manager) signingKey(passwordHash string) []byte {
	return []byte(m.secret + passwordHash)
}

// GenerateResetToken issues a recovery token bound to the user's
// current password hash.
func (m *Manager) GenerateResetToken(userID, email, passwordHash string) (string, error) {
	claims := ResetClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.signingKey(passwordHash))
}

// PeekUserID extracts the user ID without verifying the signature.
// Callers use it to load the user whose password hash completes the
// signing key; ValidateResetToken must still run afterwards.
func (m *Manager) PeekUserID(tokenString string) (string, error) {
	claims := &ResetClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return "", fmt.Errorf("malformed token: %w", err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token missing user id")
	}
	return claims.UserID, nil
}

// ValidateResetToken verifies signature and expiry against the
// user's current password hash.
func (m *Manager) ValidateResetToken(tokenString, passwordHash string) (*ResetClaims, error) {
	claims := &ResetClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.signingKey(passwordHash), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
