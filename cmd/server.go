package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	. "gift-registry/internal"
	"gift-registry/internal/config"
	"gift-registry/internal/media"
	"gift-registry/internal/notify"
	"gift-registry/internal/storage"
	"gift-registry/internal/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gift registry server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		fmt.Println("Starting gift registry server...")
		ServerMain(ctx, provider)
	},
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	// Determine level from config and set it on the handler options.
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

// Generate a static QR code linking to the registry, for printing on
// invitations. Only possible when the base URL is absolute.
func genRegistryQr(url string) {
	if !strings.HasPrefix(url, "http") {
		return
	}

	qrCode, err := qrcode.Encode(url, qrcode.Medium, config.QR_IMAGE_SIZE)
	if err != nil {
		slog.Error("Error generating registry QR code", "error", err)
		return
	}

	filePath := "web/assets/registry_qr.png"

	// Save the QR code to a file
	if err := os.WriteFile(filePath, qrCode, 0644); err != nil {
		slog.Error("Error saving registry QR code", "error", err)
	} else {
		slog.Debug("Registry QR code saved", "file_path", filePath, "url", url)
	}
}

func ServerMain(ctx context.Context, storageProvider storage.Provider) {

	if config.Cfg == nil {
		panic("Config not initialized.")
	}

	// Use the provider passed from cobra command (already initialized)
	if storageProvider == nil {
		slog.Error("Storage provider is nil")
		os.Exit(1)
	}

	mediaStore, err := media.NewStore(&config.Cfg.Media)
	if err != nil {
		slog.Error("Failed to initialize media store", "error", err)
		os.Exit(1)
	}

	notifier := notify.New(config.Cfg.Email)
	if notifier == nil {
		slog.Info("Email notifications disabled")
	}

	genRegistryQr(config.Cfg.BaseURL)

	// Initialize HTTP server
	server := HTTPServer()

	// Middleware to inject dependencies into context
	server.Use(func(c *gin.Context) {
		c.Set("Storage", storageProvider)
		c.Set("Media", mediaStore)
		c.Set("Notifier", notifier)
		c.Set("BaseURL", utils.GetBaseURL(c, config.Cfg.BaseURL))
		c.Next()
	})

	RegisterRoutes(server)

	server.Run()
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
