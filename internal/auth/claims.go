// Package auth inspects the JWT access tokens issued by the warehouse backend.
// Tokens are never verified here; the backend remains the authority.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoToken is returned when there is no token to inspect
	ErrNoToken = errors.New("no token")

	// ErrInvalidToken is returned when the token cannot be parsed
	ErrInvalidToken = errors.New("invalid token")
)

// SessionInfo is what a client can learn from an access token without the backend
type SessionInfo struct {
	UserID    string
	Username  string
	Email     string
	TokenType string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired reports whether the token has expired. Tokens without exp never expire here.
func (s *SessionInfo) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// ExpiresIn returns the time left before expiry, zero when unknown or already expired
func (s *SessionInfo) ExpiresIn() time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	if d := time.Until(s.ExpiresAt); d > 0 {
		return d
	}
	return 0
}

// Subject returns the best human readable identity in the token
func (s *SessionInfo) Subject() string {
	switch {
	case s.Email != "":
		return s.Email
	case s.Username != "":
		return s.Username
	default:
		return s.UserID
	}
}

// ParseSessionInfo extracts claims from an access token without verifying its signature
func ParseSessionInfo(tokenString string) (*SessionInfo, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	info := &SessionInfo{
		UserID:    claimString(claims["user_id"]),
		Username:  claimString(claims["username"]),
		Email:     claimString(claims["email"]),
		TokenType: claimString(claims["token_type"]),
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}

	return info, nil
}

// IsTokenExpired reports whether tokenString is expired.
// Unparseable tokens count as expired.
func IsTokenExpired(tokenString string) bool {
	info, err := ParseSessionInfo(tokenString)
	if err != nil {
		return true
	}
	return info.IsExpired()
}

// claimString accepts string and numeric claims; SimpleJWT encodes user_id as a number
func claimString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(c, 10)
	default:
		return ""
	}
}
