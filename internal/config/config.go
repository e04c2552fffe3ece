package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

const QR_IMAGE_SIZE = 512

// MaxUploadSize is the largest accepted gift image, in bytes.
const MaxUploadSize = 5 * 1024 * 1024

// MaxBulkItems caps a single bulk import request.
const MaxBulkItems = 50

type Config struct {
	// Secret key for signing the admin session cookie. Must be set in production.
	CookieSecret string `mapstructure:"cookie_secret"`

	// Plaintext admin passcode. Either this or AdminPasscodeHash must be set
	// for the login endpoint to work.
	AdminPasscode string `mapstructure:"admin_passcode"`
	// Argon2id-encoded passcode, preferred over the plaintext form.
	// Format: base64(salt)$base64(hash).
	AdminPasscodeHash string `mapstructure:"admin_passcode_hash"`

	LogLevel string `mapstructure:"log_level"`

	BaseURL string `mapstructure:"base_url"` // Base URL for the application. May be relative, e.g. /registry/, or absolute.

	Storage Storage `mapstructure:"storage"`
	Media   Media   `mapstructure:"media"`

	// Notification email configuration
	Email Email `mapstructure:"email"`
}

type Email struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	// NotifyTo receives a mail on each new RSVP, reservation and contribution.
	// Empty disables notifications.
	NotifyTo string `mapstructure:"notify_to"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from a config file and environment variables.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvPrefix("")

	if len(configFile) > 0 {
		for _, path := range configFile {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	// Convert relative sqlite path to the instance folder
	if cfg.Storage.SQLite != nil {
		if cfg.Storage.SQLite.Path == ":memory:" {
			// In-memory database, do nothing
		} else if !os.IsPathSeparator(cfg.Storage.SQLite.Path[0]) {
			cfg.Storage.SQLite.Path = fmt.Sprintf("%s/%s", getConfigPath(), cfg.Storage.SQLite.Path)
		}
	}

	// The cookie secret and passcode are critical for the admin area.
	// Their absence is fatal in production and a loud warning otherwise.
	if cfg.CookieSecret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("COOKIE_SECRET configuration variable is required in production")
		}
		slog.Warn("Cookie secret is not set. Do not use in production.")
	}
	if cfg.AdminPasscode == "" && cfg.AdminPasscodeHash == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("ADMIN_PASSCODE or ADMIN_PASSCODE_HASH is required in production")
		}
		slog.Warn("Admin passcode is not set. Admin login is disabled.")
	}

	return &cfg, nil
}
