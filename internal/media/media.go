// Package media stores uploaded gift images and hands back public URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"gift-registry/internal/config"
)

// Store is the object-storage abstraction behind image upload. Put returns the
// public URL and storage path of the saved object.
type Store interface {
	Put(ctx context.Context, path string, contentType string, body io.Reader) (url string, err error)
}

// Allowed upload content types, mapped to file extensions.
var allowedTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// AllowedType reports whether contentType is an accepted image type.
func AllowedType(contentType string) bool {
	_, ok := allowedTypes[strings.ToLower(contentType)]
	return ok
}

// ObjectPath builds a unique storage path for an image of the given content
// type, e.g. items/1716920000000-x4k2jq.jpg.
func ObjectPath(contentType string) string {
	ext, ok := allowedTypes[strings.ToLower(contentType)]
	if !ok {
		ext = "jpg"
	}
	return fmt.Sprintf("items/%d-%s.%s", time.Now().UnixMilli(), randomSuffix(6), ext)
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// NewStore builds the configured Store implementation.
func NewStore(cfg *config.Media) (Store, error) {
	switch cfg.Type {
	case "local", "":
		if cfg.Local == nil {
			return nil, fmt.Errorf("media.local configuration missing")
		}
		return NewLocalStore(cfg.Local)
	case "s3":
		if cfg.S3 == nil {
			return nil, fmt.Errorf("media.s3 configuration missing")
		}
		return NewS3Store(cfg.S3)
	default:
		slog.Error("Unsupported media configuration", "type", cfg.Type)
		return nil, fmt.Errorf("unknown media store type %q", cfg.Type)
	}
}
