package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-registry/internal/config"
)

func TestLocalStorePut(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(&config.LocalMedia{Path: dir, URL: "/uploads/"})
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "items/test.jpg", "image/jpeg", strings.NewReader("fake-jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/items/test.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "items", "test.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg", string(data))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(&config.LocalMedia{Path: t.TempDir(), URL: "/uploads"})
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../escape.jpg", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)

	_, err = store.Put(context.Background(), "/etc/passwd", "image/jpeg", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestAllowedType(t *testing.T) {
	assert.True(t, AllowedType("image/jpeg"))
	assert.True(t, AllowedType("image/PNG"))
	assert.True(t, AllowedType("image/webp"))
	assert.True(t, AllowedType("image/gif"))
	assert.False(t, AllowedType("image/svg+xml"))
	assert.False(t, AllowedType("application/pdf"))
}

func TestObjectPath(t *testing.T) {
	p := ObjectPath("image/png")
	assert.True(t, strings.HasPrefix(p, "items/"))
	assert.True(t, strings.HasSuffix(p, ".png"))

	// Two calls should not collide.
	assert.NotEqual(t, ObjectPath("image/png"), ObjectPath("image/png"))
}
