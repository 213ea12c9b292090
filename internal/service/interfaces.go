package service

import (
	"context"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

// AuthService issues and verifies the tokens of the reference remote store.
type AuthService interface {
	// IssueTokens signs a new identity and refresh token pair for ownerID.
	IssueTokens(ctx context.Context, ownerID string) (models.TokenResponse, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error)

	// ParseToken verifies an identity token and returns its claims.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// DocumentService stores the documents pushed by sync clients. Every method
// acts on behalf of ownerID, the authenticated caller.
type DocumentService interface {
	// Create stores a new document, or updates the caller's document with the
	// same clientId. The bool reports whether a document was created.
	Create(ctx context.Context, ownerID string, c models.Collection, fields map[string]any) (models.Document, bool, error)

	// Update replaces the fields of one of the caller's documents.
	Update(ctx context.Context, ownerID string, c models.Collection, id string, fields map[string]any) (models.Document, error)

	// Delete removes one of the caller's documents. Unknown ids succeed.
	Delete(ctx context.Context, ownerID string, c models.Collection, id string) error

	// PutDailyActivity upserts the daily activity of pathOwner on date.
	PutDailyActivity(ctx context.Context, ownerID, pathOwner, date string, fields map[string]any) (models.Document, error)

	// PutProfile upserts the profile of pathOwner.
	PutProfile(ctx context.Context, ownerID, pathOwner string, fields map[string]any) (models.Document, error)

	// List returns the caller's documents of c.
	List(ctx context.Context, ownerID string, c models.Collection) ([]models.Document, error)
}

// DocumentServiceWrapper defines middleware composition for DocumentService.
// Implementations wrap an existing DocumentService to add behavior such as
// validation.
type DocumentServiceWrapper interface {
	Wrap(DocumentService) DocumentService
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
