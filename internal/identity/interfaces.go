package identity

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_mock.go -package=mock

// OwnerResolver reports the owner identity of the signed-in user.
type OwnerResolver interface {
	// CurrentOwner returns the owner id and true, or false when nobody is
	// signed in. It never performs a network call.
	CurrentOwner(ctx context.Context) (string, bool)
}

// TokenProvider hands out a fresh identity token for remote calls.
type TokenProvider interface {
	// IDToken returns a currently valid identity token, refreshing it when
	// it is about to expire. Returns [ErrNoIdentity] when signed out.
	IDToken(ctx context.Context) (string, error)
}

// Provider combines [OwnerResolver] and [TokenProvider].
type Provider interface {
	OwnerResolver
	TokenProvider
}
