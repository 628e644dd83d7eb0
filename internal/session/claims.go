package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims is the payload of the bearer token issued by the courier API.
type Claims struct {
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
	UserID int    `json:"id,omitempty"`
	jwt.RegisteredClaims
}

// DisplayName returns the best available name for the logged-in user.
func (c *Claims) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.Subject != "" {
		return c.Subject
	}
	return "User"
}

// DecodeClaims parses the token payload without verifying the signature.
// Verification is the API's job; the portal only reads expiry and identity
// claims for display and session housekeeping. Callers must handle the error
// branch — an undecodable token is treated as not authenticated.
func DecodeClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// TokenExpired reports whether the token's exp claim is in the past.
// A token with no exp claim, or one that cannot be decoded, counts as
// expired.
func TokenExpired(token string) bool {
	claims, err := DecodeClaims(token)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !time.Now().Before(claims.ExpiresAt.Time)
}
