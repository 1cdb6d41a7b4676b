package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/timur/tennis-hub/internal/domain"
)

// Session is the authenticated state of the client. It is owned exclusively
// by the Manager; everything else reads it through Manager methods.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
}

// Authenticated reports whether the session holds a full credential set.
// A user record without both tokens (or the reverse) counts as logged out.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.RefreshToken != "" && s.User.Username != ""
}

// TokenExpiry extracts the exp claim from a bearer token without verifying
// the signature; the client has no key material and treats tokens as opaque
// otherwise. Returns false for malformed tokens or tokens without exp.
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
