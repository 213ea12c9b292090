package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/service"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const grantTypeRefreshToken = "refresh_token"

// refreshToken serves the refresh-token grant in the secure token service
// layout: a form body with grant_type and refresh_token.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid token request form")
		utils.WriteError(w, http.StatusBadRequest, "invalid_request", "form body expected")
		return
	}

	if grant := r.PostForm.Get("grant_type"); grant != grantTypeRefreshToken {
		log.Warn().Str("grant_type", grant).Msg("unsupported grant type")
		utils.WriteError(w, http.StatusBadRequest, "unsupported_grant_type", "only refresh_token is supported")
		return
	}

	tokens, err := h.services.AuthService.Refresh(ctx, r.PostForm.Get("refresh_token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenIsExpired),
			errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrWrongTokenUse):
			log.Warn().Err(err).Msg("refresh token rejected")
			utils.WriteError(w, http.StatusBadRequest, "invalid_grant", err.Error())
		default:
			log.Err(err).Msg("unexpected error occurred during token refresh")
			utils.WriteError(w, http.StatusInternalServerError, "server_error", http.StatusText(http.StatusInternalServerError))
		}
		return
	}

	utils.WriteJSON(w, tokens, http.StatusOK)
}

// issueSession hands out a token pair for the given user id. It stands in
// for the sign-in flow of a real authentication provider and is mounted only
// when the server runs with dev sessions enabled.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		utils.WriteError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON was passed")
		return
	}

	tokens, err := h.services.AuthService.IssueTokens(ctx, req.UserID)
	if err != nil {
		writeServiceError(w, log, err, "error issuing tokens")
		return
	}

	log.Info().Str("owner_id", req.UserID).Msg("session issued")
	utils.WriteJSON(w, tokens, http.StatusOK)
}
