// Package token issues and verifies the stateless HS256 session tokens used
// for authentication. Tokens are self-contained: validity is determined by
// signature and expiry alone, never by a server-side list, and claims are
// trusted as of issuance time.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/account-service/internal/core/domain"
)

// DefaultTTL is the fixed session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

var ErrExpired = errors.New("token expired")
var ErrInvalid = errors.New("invalid token")

// Claims is the payload embedded in every session token.
type Claims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and verifies session tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service. A non-positive ttl falls back to
// DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token carrying the user id and role, expiring
// ttl from now.
func (s *Service) Issue(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates the signature and expiry and returns the embedded claims
// exactly as issued. It fails with ErrExpired for a past expiry and
// ErrInvalid for anything else the token can be wrong about.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !t.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
