package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

func testAuthConfig() config.ServerAuth {
	return config.ServerAuth{
		TokenSignKey:         "test-sign-key",
		TokenIssuer:          "fittrackr-test",
		TokenDuration:        time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
	}
}

func TestAuthService_IssueTokens(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	resp, err := svc.IssueTokens(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, resp.IDToken, resp.AccessToken)
	assert.NotEqual(t, resp.IDToken, resp.RefreshToken)

	token, err := svc.ParseToken(context.Background(), resp.IDToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", token.OwnerID)
	assert.Equal(t, models.TokenUseID, token.Use)
}

func TestAuthService_IssueTokensWithoutOwner(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	_, err := svc.IssueTokens(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Refresh(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	issued, err := svc.IssueTokens(context.Background(), "user-1")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), issued.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", refreshed.UserID)
	assert.NotEmpty(t, refreshed.IDToken)
}

func TestAuthService_TokenUseIsChecked(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), logger.Nop())

	issued, err := svc.IssueTokens(context.Background(), "user-1")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), issued.IDToken)
	assert.ErrorIs(t, err, ErrWrongTokenUse)

	_, err = svc.ParseToken(context.Background(), issued.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenUse)
}

func TestAuthService_ParseTokenErrors(t *testing.T) {
	cfg := testAuthConfig()
	svc := NewAuthService(cfg, logger.Nop())

	past := time.Now().Add(-time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Token{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		Use: models.TokenUseID,
	}).SignedString([]byte(cfg.TokenSignKey))
	require.NoError(t, err)
	foreign, err := utils.GenerateJWTToken(cfg.TokenIssuer, "user-1", models.TokenUseID, time.Hour, "other-key")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: expired, wantErr: ErrTokenIsExpired},
		{name: "wrong signature", token: foreign.SignedString, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "empty", token: "", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewAuthService_DefaultRefreshTTL(t *testing.T) {
	cfg := testAuthConfig()
	cfg.RefreshTokenDuration = 0

	svc := NewAuthService(cfg, logger.Nop()).(*authService)
	assert.Equal(t, config.DefaultRefreshTTL, svc.cfg.RefreshTokenDuration)
}
