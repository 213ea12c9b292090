// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity keeps the signed-in session of the sync client and hands
// out identity tokens for remote calls.
//
// The session (owner id, refresh token and last identity token) is persisted
// in the local store. Tokens are refreshed through an [oauth2.TokenSource]
// against a secure-token style endpoint using the refresh_token grant; the
// owner id is read from the "sub" claim of the identity token.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/store"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
	"github.com/ST10257746/prog7314-part1-sub000/models"
)

const idTokenExtraKey = "id_token"

// Manager implements [Provider] on top of a [store.SessionStore].
type Manager struct {
	sessions   store.SessionStore
	oauth      *oauth2.Config
	httpClient *http.Client
	logger     *logger.Logger

	mu      sync.Mutex
	session *models.Session
	source  oauth2.TokenSource
}

// NewManager builds a Manager refreshing tokens against cfg.TokenURL. When
// cfg.APIKey is set it is passed as the "key" query parameter.
func NewManager(sessions store.SessionStore, cfg config.ClientIdentity, timeout time.Duration, log *logger.Logger) *Manager {
	httpClient := utils.NewHTTPClient().SetTimeout(timeout).GetClient()

	return &Manager{
		sessions:   sessions,
		httpClient: httpClient,
		logger:     log,
		oauth: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURLWithKey(cfg.TokenURL, cfg.APIKey),
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
}

// SignIn stores a new session for the tokens handed out by the sign-in flow
// and returns the owner id. When idToken is empty it is obtained from the
// token endpoint first.
func (m *Manager) SignIn(ctx context.Context, refreshToken, idToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("%w: empty refresh token", ErrNoIdentity)
	}

	tok := &oauth2.Token{RefreshToken: refreshToken}
	if idToken != "" {
		tok.AccessToken = idToken
		tok.Expiry, _ = utils.TokenExpiry(idToken)
	} else {
		fresh, err := m.oauth.TokenSource(m.oauthContext(), tok).Token()
		if err != nil {
			return "", mapRefreshError(err)
		}
		tok = fresh
		idToken = idTokenOf(fresh)
	}

	ownerID, err := utils.ParseOwnerIDUnverified(idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	session := models.Session{
		OwnerID:      ownerID,
		RefreshToken: tok.RefreshToken,
		IDToken:      idToken,
		Expiry:       tok.Expiry,
		UpdatedAt:    time.Now().UTC(),
	}
	if session.RefreshToken == "" {
		session.RefreshToken = refreshToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err = m.sessions.SaveSession(ctx, session); err != nil {
		return "", fmt.Errorf("error saving session: %w", err)
	}
	m.session = &session
	m.source = nil

	logger.FromContext(ctx).Info().Str("owner_id", ownerID).Msg("signed in")
	return ownerID, nil
}

// CurrentOwner implements [OwnerResolver].
func (m *Manager) CurrentOwner(ctx context.Context) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.loadLocked(ctx)
	if err != nil {
		return "", false
	}
	return session.OwnerID, true
}

// IDToken implements [TokenProvider]. A refreshed token is persisted
// together with a rotated refresh token.
func (m *Manager) IDToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.loadLocked(ctx)
	if err != nil {
		return "", err
	}

	if m.source == nil {
		initial := &oauth2.Token{
			AccessToken:  session.IDToken,
			RefreshToken: session.RefreshToken,
			Expiry:       session.Expiry,
			TokenType:    "Bearer",
		}
		m.source = oauth2.ReuseTokenSource(initial, m.oauth.TokenSource(m.oauthContext(), initial))
	}

	tok, err := m.source.Token()
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "Manager.IDToken").
			Str("owner_id", session.OwnerID).
			Msg("failed to refresh identity token")
		return "", mapRefreshError(err)
	}

	idToken := idTokenOf(tok)
	if idToken != session.IDToken || (tok.RefreshToken != "" && tok.RefreshToken != session.RefreshToken) {
		updated := *session
		updated.IDToken = idToken
		updated.Expiry = tok.Expiry
		updated.UpdatedAt = time.Now().UTC()
		if tok.RefreshToken != "" {
			updated.RefreshToken = tok.RefreshToken
		}
		if err = m.sessions.SaveSession(ctx, updated); err != nil {
			return "", fmt.Errorf("error saving refreshed session: %w", err)
		}
		m.session = &updated
	}

	return idToken, nil
}

// SignOut forgets the session. Local records are left to the caller.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	m.session = nil
	m.source = nil
	return nil
}

// loadLocked returns the cached session, reading it from the store on first
// use. Must be called with mu held.
func (m *Manager) loadLocked(ctx context.Context) (*models.Session, error) {
	if m.session != nil {
		return m.session, nil
	}

	session, err := m.sessions.GetSession(ctx)
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, ErrNoIdentity
	}
	if err != nil {
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	if session.OwnerID == "" {
		return nil, ErrNoIdentity
	}

	m.session = &session
	return m.session, nil
}

// oauthContext carries the HTTP client used by the token source. It is not
// bound to any caller so that a cached source outlives the first request.
func (m *Manager) oauthContext() context.Context {
	return context.WithValue(context.Background(), oauth2.HTTPClient, m.httpClient)
}

func idTokenOf(tok *oauth2.Token) string {
	if v, ok := tok.Extra(idTokenExtraKey).(string); ok && v != "" {
		return v
	}
	return tok.AccessToken
}

func mapRefreshError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		switch retrieveErr.Response.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", ErrSessionRevoked, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrTokenRefresh, err)
}

func tokenURLWithKey(tokenURL, apiKey string) string {
	if apiKey == "" {
		return tokenURL
	}
	u, err := url.Parse(tokenURL)
	if err != nil {
		return tokenURL
	}
	q := u.Query()
	q.Set("key", apiKey)
	u.RawQuery = q.Encode()
	return u.String()
}

var _ Provider = (*Manager)(nil)
