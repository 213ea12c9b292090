package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const tokenTypeBearer = "Bearer"

type authService struct {
	cfg config.ServerAuth

	logger *logger.Logger
}

func NewAuthService(cfg config.ServerAuth, logger *logger.Logger) AuthService {
	if cfg.RefreshTokenDuration <= 0 {
		cfg.RefreshTokenDuration = config.DefaultRefreshTTL
	}
	return &authService{cfg: cfg, logger: logger}
}

func (a *authService) IssueTokens(ctx context.Context, ownerID string) (models.TokenResponse, error) {
	if ownerID == "" {
		return models.TokenResponse{}, ErrInvalidDataProvided
	}

	idToken, err := utils.GenerateJWTToken(a.cfg.TokenIssuer, ownerID, models.TokenUseID, a.cfg.TokenDuration, a.cfg.TokenSignKey)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("error generating identity token: %w", err)
	}

	refreshToken, err := utils.GenerateJWTToken(a.cfg.TokenIssuer, ownerID, models.TokenUseRefresh, a.cfg.RefreshTokenDuration, a.cfg.TokenSignKey)
	if err != nil {
		return models.TokenResponse{}, fmt.Errorf("error generating refresh token: %w", err)
	}

	logger.FromContext(ctx).Debug().Str("owner_id", ownerID).Msg("tokens issued")

	return models.TokenResponse{
		AccessToken:  idToken.SignedString,
		IDToken:      idToken.SignedString,
		RefreshToken: refreshToken.SignedString,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(a.cfg.TokenDuration.Seconds()),
		UserID:       ownerID,
	}, nil
}

func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error) {
	token, err := a.parse(refreshToken, models.TokenUseRefresh)
	if err != nil {
		return models.TokenResponse{}, err
	}

	return a.IssueTokens(ctx, token.OwnerID)
}

func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return a.parse(tokenString, models.TokenUseID)
}

func (a *authService) parse(tokenString, use string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.cfg.TokenSignKey, a.cfg.TokenIssuer)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Token{}, ErrTokenIsExpired
	case err != nil:
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if token.Use != use {
		return models.Token{}, ErrWrongTokenUse
	}
	return token, nil
}
