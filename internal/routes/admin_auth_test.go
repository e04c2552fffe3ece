package routes

import (
	"crypto/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-registry/internal/config"
	"gift-registry/internal/session"
)

func TestAdminGate(t *testing.T) {
	r, _ := newTestRouter(t)

	// No cookie
	w, resp := doJSON(t, r, http.MethodGet, "/api/admin/items", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, resp["error"])

	// Garbage cookie
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/items", nil, session.CookieName+"=not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret
	forged, err := session.Issue("some-other-secret")
	require.NoError(t, err)
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/items", nil, session.CookieName+"="+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid session
	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/items", nil, adminCookie(t))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGateRedirectsPages(t *testing.T) {
	r, _ := newTestRouter(t)
	r.GET("/admin", AdminGate(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/login",
		map[string]any{"passcode": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/admin/login",
		map[string]any{"passcode": testPasscode}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	// The issued cookie opens the admin API
	var cookie string
	for _, sc := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, session.CookieName+"=") {
			cookie, _, _ = strings.Cut(sc, ";")
		}
	}
	require.NotEmpty(t, cookie)

	w, _ = doJSON(t, r, http.MethodGet, "/api/admin/items", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLoginHashedPasscode(t *testing.T) {
	r, _ := newTestRouter(t)

	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	require.NoError(t, err)

	// The hash takes precedence over the plaintext passcode
	config.Cfg.AdminPasscodeHash = HashPasscode("s3cret", salt)

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/login",
		map[string]any{"passcode": testPasscode}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/admin/login",
		map[string]any{"passcode": "s3cret"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminLoginUnconfigured(t *testing.T) {
	r, _ := newTestRouter(t)
	config.Cfg.AdminPasscode = ""
	config.Cfg.AdminPasscodeHash = ""

	w, _ := doJSON(t, r, http.MethodPost, "/api/admin/login",
		map[string]any{"passcode": "anything"}, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminLogout(t *testing.T) {
	r, _ := newTestRouter(t)

	w, resp := doJSON(t, r, http.MethodPost, "/api/admin/logout", nil, adminCookie(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])

	// The cookie is cleared
	var cleared bool
	for _, sc := range w.Header().Values("Set-Cookie") {
		if strings.HasPrefix(sc, session.CookieName+"=") && strings.Contains(sc, "Max-Age=0") {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
