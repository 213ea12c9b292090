package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const sessionPath = "/api/auth/session"

type httpSessionIssuer struct {
	client *utils.HTTPClient
}

// NewHTTPSessionIssuer asks the remote store for a token pair. It stands in
// for the sign-in flow of a hosted auth provider.
func NewHTTPSessionIssuer(cfg config.ClientAdapter) SessionIssuer {
	client := utils.NewHTTPClient()
	client.SetBaseURL(strings.TrimRight(cfg.HTTPAddress, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpSessionIssuer{client: client}
}

func (s *httpSessionIssuer) IssueSession(ctx context.Context, userID string) (models.TokenResponse, error) {
	var (
		tokens  models.TokenResponse
		failure models.ErrorResponse
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(models.SessionRequest{UserID: userID}).
		SetResult(&tokens).
		SetError(&failure).
		Post(sessionPath)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("%w: %w", ErrSessionRequest, err)
	}
	if resp.IsError() {
		return models.TokenResponse{}, fmt.Errorf("%w: status %d: %s", ErrSessionRejected, resp.StatusCode(), failure.Message)
	}
	if tokens.RefreshToken == "" {
		return models.TokenResponse{}, fmt.Errorf("%w: no refresh token in response", ErrSessionRejected)
	}

	return tokens, nil
}
