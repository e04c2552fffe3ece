package routes

import (
	"github.com/gin-gonic/gin"

	"gift-registry/internal/media"
	"gift-registry/internal/notify"
	"gift-registry/internal/storage"
	"gift-registry/internal/utils"
)

// Merge into existing gin.H
func H(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["BaseURL"] = c.MustGet("BaseURL").(string)
	data["AppVersion"] = utils.GetVersion()
	return data
}

// Returns a HTML response with merged data
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data = H(c, data)
	c.HTML(code, name, data)
}

// Store returns the storage provider injected by the server setup.
func Store(c *gin.Context) storage.Provider {
	return c.MustGet("Storage").(storage.Provider)
}

// Media returns the image store injected by the server setup.
func Media(c *gin.Context) media.Store {
	return c.MustGet("Media").(media.Store)
}

// Notify returns the notifier, which may be nil when mail is not configured.
func Notify(c *gin.Context) *notify.Notifier {
	v, exists := c.Get("Notifier")
	if !exists {
		return nil
	}
	n, _ := v.(*notify.Notifier)
	return n
}
