package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oauthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{OAuth: config.OAuthConfig{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
	}}
	h := handler.NewGoogleOAuthHandler(cfg, nil)
	r := gin.New()
	r.GET("/auth/google", h.Redirect)
	r.GET("/auth/google/callback", h.Callback)
	return r
}

func TestGoogleRedirectBindsStateToCookie(t *testing.T) {
	r := oauthRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	state := loc.Query().Get("state")
	require.NotEmpty(t, state)
	assert.NotEqual(t, "state", state)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "oauth_state" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "redirect must set the state cookie")
	assert.Equal(t, state, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// Each redirect mints a fresh state.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	loc2, err := url.Parse(w2.Header().Get("Location"))
	require.NoError(t, err)
	assert.NotEqual(t, state, loc2.Query().Get("state"))
}

func TestGoogleCallbackRejectsBadState(t *testing.T) {
	r := oauthRouter()

	t.Run("MissingCookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=xyz", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("StateMismatch", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=xyz", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "different"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("MissingCodeAfterValidState", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc", nil)
		req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "abc"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing code")
	})
}
