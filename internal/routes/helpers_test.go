package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gift-registry/internal/config"
	"gift-registry/internal/media"
	"gift-registry/internal/session"
	"gift-registry/internal/storage"
)

const (
	testSecret   = "test-cookie-secret"
	testPasscode = "hunter2"
)

func newTestRouter(t *testing.T) (*gin.Engine, storage.Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.Cfg = &config.Config{
		CookieSecret:  testSecret,
		AdminPasscode: testPasscode,
		BaseURL:       "/",
	}

	dir := t.TempDir()
	provider := storage.NewProvider(&config.Storage{
		SQLite: &config.SQLLiteStorage{Path: filepath.Join(dir, "test.db")},
	})
	require.NotNil(t, provider)
	t.Cleanup(func() { provider.Close() })

	mediaStore, err := media.NewStore(&config.Media{
		Type: "local",
		Local: &config.LocalMedia{
			Path: filepath.Join(dir, "uploads"),
			URL:  "/uploads",
		},
	})
	require.NoError(t, err)

	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set("Storage", provider)
		c.Set("Media", mediaStore)
		c.Set("BaseURL", config.Cfg.BaseURL)
		c.Next()
	})

	api := r.Group("/api")
	PublicApi(api)
	AdminApi(api.Group("/admin"))

	return r, provider
}

// doJSON sends a JSON request and decodes the JSON response into a map.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookie string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response body: %s", w.Body.String())
	}
	return w, resp
}

// adminCookie mints a valid session cookie for admin requests.
func adminCookie(t *testing.T) string {
	t.Helper()
	token, err := session.Issue(testSecret)
	require.NoError(t, err)
	return session.CookieName + "=" + token
}

func createItem(t *testing.T, p storage.Provider, groupGift bool) *storage.GiftItem {
	t.Helper()

	item := &storage.GiftItem{
		Title:               "Jogo de toalhas",
		PriceSuggestedCents: 12000,
		IsGroupGift:         groupGift,
		Status:              storage.ItemStatusActive,
	}
	if groupGift {
		goal := int64(500000)
		item.GoalCents = &goal
	}
	require.NoError(t, p.CreateItem(context.Background(), item))
	return item
}
