package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
)

const bearerPrefix = "Bearer "

// auth enforces bearer identity tokens. On success the owner id of the token
// is stored in the request context with [utils.WithOwnerID].
//
// A missing or malformed header is rejected with 401 and "No token
// provided"; a token that fails verification with 401 and "Invalid or
// expired token".
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Msg("request without token")
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "No token provided")
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpired) {
				log.Warn().Err(err).Msg("token expired")
			} else {
				log.Warn().Err(err).Msg("error occurred during parsing token")
			}
			utils.WriteError(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithOwnerID(ctx, token.OwnerID)))
	})
}

// getTokenFromAuthHeader extracts the token of an "Authorization: Bearer
// <token>" header value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
