package config

var defaults = map[string]any{
	"cookie_secret":       "",
	"admin_passcode":      "",
	"admin_passcode_hash": "",
	"log_level":           "info",
	"base_url":            "/",

	"storage.type":       "sqlite",
	"storage.local.path": "./data/registry.db",

	"media.type":       "local",
	"media.local.path": "./data/uploads",
	"media.local.url":  "/uploads",

	"media.s3.endpoint":   "",
	"media.s3.region":     "us-east-1",
	"media.s3.bucket":     "gift-images",
	"media.s3.access_key": "",
	"media.s3.secret_key": "",
	"media.s3.public_url": "",

	"email.host":      "host.docker.internal",
	"email.port":      25,
	"email.username":  "",
	"email.password":  "",
	"email.from":      "noreply@example.com",
	"email.notify_to": "",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
