// Package tokeninfo decodes the bearer token issued at login for display.
// The signature is not verified: the console never trusts the token, it
// only shows who it was issued to and when it expires.
package tokeninfo

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// Claims are the fields the login endpoint is known to set.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Info is the displayable part of a token.
type Info struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

// Expired reports whether the token has an expiry before now.
func (i Info) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

// Decode extracts Info from token. Opaque tokens return ErrNotJWT.
func Decode(token string) (Info, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, errors.Join(ErrNotJWT, err)
	}

	info := Info{Subject: claims.Subject, Role: claims.Role}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	return info, nil
}
