package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/models"
)

func postForm(t *testing.T, router http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRefreshToken_Success(t *testing.T) {
	router, services := newTestRouter(t)

	issued, err := services.AuthService.IssueTokens(t.Context(), "user-1")
	require.NoError(t, err)

	rr := postForm(t, router, url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {issued.RefreshToken},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp models.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.IDToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// the fresh identity token opens the protected routes
	rr2, _ := doJSON(t, router, http.MethodGet, "/api/goals", resp.IDToken, nil)
	assert.Equal(t, http.StatusOK, rr2.Code)
}

func TestRefreshToken_Errors(t *testing.T) {
	router, services := newTestRouter(t)

	issued, err := services.AuthService.IssueTokens(t.Context(), "user-1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		form      url.Values
		wantError string
	}{
		{name: "password grant", form: url.Values{"grant_type": {"password"}}, wantError: "unsupported_grant_type"},
		{name: "missing grant", form: url.Values{"refresh_token": {issued.RefreshToken}}, wantError: "unsupported_grant_type"},
		{name: "garbage token", form: url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"nope"}}, wantError: "invalid_grant"},
		{name: "identity token", form: url.Values{"grant_type": {"refresh_token"}, "refresh_token": {issued.IDToken}}, wantError: "invalid_grant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postForm(t, router, tt.form)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var reply models.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &reply))
			assert.Equal(t, tt.wantError, reply.Error)
		})
	}
}

func TestIssueSession(t *testing.T) {
	router, services := newDevSessionRouter(t)

	rr, reply := doJSON(t, router, http.MethodPost, "/api/auth/session", "", models.SessionRequest{UserID: "user-9"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-9", reply["user_id"])

	token, err := services.AuthService.ParseToken(t.Context(), reply["id_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user-9", token.OwnerID)
}

func TestIssueSession_BadRequests(t *testing.T) {
	router, _ := newDevSessionRouter(t)

	rr, _ := doJSON(t, router, http.MethodPost, "/api/auth/session", "", models.SessionRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/session", strings.NewReader("{"))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIssueSession_NotMountedByDefault(t *testing.T) {
	router, services := newTestRouter(t)

	owner := tokenFor(t, services, "victim")
	rr, _ := doJSON(t, router, http.MethodPost, "/api/nutrition", owner, map[string]any{
		"foodName": "Secret", "mealType": "LUNCH", "calories": 100,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, reply := doJSON(t, router, http.MethodPost, "/api/auth/session", "", models.SessionRequest{UserID: "victim"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotContains(t, reply, "id_token")
}
