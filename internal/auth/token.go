package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what can be read from an access token without its key.
type TokenInfo struct {
	UserID    string
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry at or before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Inspect decodes the claims of a JWT access token without verifying its
// signature. The result is for display only; the server remains the judge
// of validity.
func Inspect(token string) (TokenInfo, error) {
	if token == "" {
		return TokenInfo{}, fmt.Errorf("token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parse token: %w", err)
	}

	var info TokenInfo
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return TokenInfo{}, fmt.Errorf("read exp: %w", err)
	}
	if exp != nil {
		info.ExpiresAt = exp.Time
	}

	switch v := claims["user_id"].(type) {
	case string:
		info.UserID = v
	case float64:
		info.UserID = fmt.Sprintf("%.0f", v)
	default:
		if sub, err := claims.GetSubject(); err == nil {
			info.UserID = sub
		}
	}
	return info, nil
}
