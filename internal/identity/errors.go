package identity

import "errors"

var (
	// ErrNoIdentity is returned when no user is signed in.
	ErrNoIdentity = errors.New("no signed-in identity")
	// ErrTokenRefresh is returned when the token endpoint could not issue a
	// new identity token.
	ErrTokenRefresh = errors.New("identity token refresh failed")
	// ErrSessionRevoked is returned when the token endpoint refused the
	// refresh token. The user has to sign in again.
	ErrSessionRevoked = errors.New("identity session revoked")
	// ErrInvalidIDToken is returned when an identity token carries no owner.
	ErrInvalidIDToken = errors.New("invalid identity token")
)
