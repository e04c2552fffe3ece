// Server-rendered pages. The heavy lifting happens in the JSON API; these
// templates are the minimal guest and admin surfaces around it.
package routes

import (
	"log/slog"
	"net/http"

	"gift-registry/internal/utils"

	"github.com/gin-gonic/gin"
)

// IndexPage renders the landing page with event info and the PIX section.
func IndexPage(c *gin.Context) {
	event, err := Store(c).GetEventConfig(c.Request.Context())
	if err != nil {
		slog.Error("IndexPage: failed to load event config", "error", err)
		AbortWithError(c, ErrDatabaseError)
		return
	}
	HTML(c, http.StatusOK, "index.html.tmpl", gin.H{
		"Event":    event,
		"ShareURL": utils.UrlFor(c, "/gifts"),
	})
}

// GiftsPage renders the public gift list.
func GiftsPage(c *gin.Context) {
	items, err := Store(c).ListItemsPublic(c.Request.Context())
	if err != nil {
		slog.Error("GiftsPage: failed to list items", "error", err)
		AbortWithError(c, ErrDatabaseError)
		return
	}
	event, err := Store(c).GetEventConfig(c.Request.Context())
	if err != nil {
		AbortWithError(c, ErrDatabaseError)
		return
	}
	HTML(c, http.StatusOK, "gifts.html.tmpl", gin.H{"Items": items, "Event": event})
}

// AdminLoginPage renders the passcode form. Already-authenticated admins
// are sent straight to the dashboard.
func AdminLoginPage(c *gin.Context) {
	HTML(c, http.StatusOK, "admin_login.html.tmpl", nil)
}

// AdminDashboardPage renders the admin shell; the dashboard itself talks
// to /api/admin/*.
func AdminDashboardPage(c *gin.Context) {
	HTML(c, http.StatusOK, "admin_dashboard.html.tmpl", nil)
}
