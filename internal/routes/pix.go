package routes

import (
	"log/slog"
	"net/http"

	"gift-registry/internal/config"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// PixQrCode handles GET /api/pix/qr.png. If the event config carries a
// pre-made QR image URL, redirect to it; otherwise render a QR of the
// configured PIX key.
func PixQrCode(c *gin.Context) {
	event, err := Store(c).GetEventConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if event.PixQrCodeURL != nil && *event.PixQrCodeURL != "" {
		c.Redirect(http.StatusFound, *event.PixQrCodeURL)
		return
	}

	if event.PixKey == "" {
		AbortWithError(c, ErrConfigMissing)
		return
	}

	png, err := qrcode.Encode(event.PixKey, qrcode.Medium, config.QR_IMAGE_SIZE)
	if err != nil {
		slog.Error("PixQrCode: failed to encode QR", "error", err)
		AbortWithError(c, ErrInternalServer)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
