package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations and
// [jwt.RegisteredClaims] for standard claim access. SignedString is the compact
// serialized form sent in the Authorization header. OwnerID is the parsed
// "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// Use distinguishes identity tokens from refresh tokens issued by the
	// reference remote store.
	Use string `json:"use,omitempty"`

	SignedString string `json:"-"`
	OwnerID      string `json:"-"`
}

// Token uses.
const (
	TokenUseID      = "id"
	TokenUseRefresh = "refresh"
)

// GetOwnerID returns the owner identifier from the "sub" claim.
func (t *Token) GetOwnerID() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty subject")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
