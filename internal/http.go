package app

import (
	"net/http"

	. "gift-registry/internal/config"

	routes "gift-registry/internal/routes"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")
	c.Next()
}

// Templates are grouped into public and admin sets sharing one layout.
func templateRenderer() multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layout := "web/templates/layout.html.tmpl"
	pages := []string{
		"index.html.tmpl",
		"gifts.html.tmpl",
		"admin_login.html.tmpl",
		"admin_dashboard.html.tmpl",
		"error.html.tmpl",
	}
	for _, page := range pages {
		r.AddFromFiles(page, layout, "web/templates/"+page)
	}
	return r
}

func HTTPServer() *gin.Engine {
	r := gin.Default()

	r.Static("/assets/", "./web/assets/")
	r.HTMLRender = templateRenderer()

	// Serve uploaded gift images directly when the local media store is used.
	if Cfg.Media.Type == "local" && Cfg.Media.Local != nil {
		r.Static(Cfg.Media.Local.URL, Cfg.Media.Local.Path)
	}

	r.Use(securityHeaders)
	r.Use(routes.ErrorHandler())

	r.GET("/ping", func(c *gin.Context) {
		msg := c.Query("ping")
		if msg == "" {
			msg = "pong"
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	})

	r.GET("/config.json", func(c *gin.Context) {
		// Provide an initial config for the client
		var clientCfg = gin.H{
			"BaseURL":      Cfg.BaseURL,
			"MaxUpload":    MaxUploadSize,
			"MaxBulkItems": MaxBulkItems,
		}

		c.JSON(http.StatusOK, clientCfg)
	})

	return r
}

// RegisterRoutes wires every page and API route onto the engine. Storage,
// media and notifier middleware must already be installed.
func RegisterRoutes(r *gin.Engine) {
	// Public pages
	r.GET("/", routes.IndexPage)
	r.GET("/gifts", routes.GiftsPage)

	// Admin login is the only ungated admin page
	r.GET("/admin/login", routes.AdminLoginPage)

	// Admin pages
	admin := r.Group("/admin", routes.AdminGate())
	{
		admin.GET("", routes.AdminDashboardPage)
		admin.GET("/items", routes.AdminDashboardPage)
		admin.GET("/rsvp", routes.AdminDashboardPage)
	}

	// JSON API
	api := r.Group("/api")
	routes.PublicApi(api)
	routes.AdminApi(api.Group("/admin"))
}
