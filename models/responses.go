package models

// ErrorResponse is the body of every non-2xx reply of the remote store.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TokenResponse is the reply of the token endpoint for the refresh-token
// grant, in the secure token service layout.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       string `json:"user_id"`
}

// MissingFieldsResponse is the 400 reply for a document without one of the
// mandatory fields of its collection.
type MissingFieldsResponse struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
}

// SessionRequest asks the development sign-in endpoint of the reference
// remote store for tokens of UserID.
type SessionRequest struct {
	UserID string `json:"userId"`
}

// HealthResponse is the reply of the reachability probe endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
