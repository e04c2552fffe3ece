package session

import (
	"net/url"
	"strings"
	"time"
)

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// CookieMaxAge matches the token TTL.
const CookieMaxAge = int(TTL / time.Second)

// TokenFromCookieHeader extracts the raw session token from a Cookie header
// value. Returns "" when the cookie is absent.
func TokenFromCookieHeader(header string) string {
	for part := range strings.SplitSeq(header, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || name != CookieName || value == "" {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			return decoded
		}
		return value
	}
	return ""
}
