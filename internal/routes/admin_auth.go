// Admin authentication.
// A single shared passcode grants a signed session cookie; there are no
// user accounts. The gate middleware verifies the cookie on every admin
// page and API request.
package routes

import (
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"gift-registry/internal/config"
	"gift-registry/internal/session"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/argon2"
)

// argon2id parameters used by both hashing and verification. Changing
// them invalidates existing hashes.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPasscode derives an argon2id hash in "base64(salt)$base64(hash)"
// form, suitable for the admin_passcode_hash config value.
func HashPasscode(passcode string, salt []byte) string {
	key := argon2.IDKey([]byte(passcode), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" + base64.RawStdEncoding.EncodeToString(key)
}

// verifyPasscode checks the submitted passcode against the configured
// credential. A hashed passcode takes precedence over the plain one.
func verifyPasscode(passcode string) (bool, error) {
	if hashed := config.Cfg.AdminPasscodeHash; hashed != "" {
		saltPart, hashPart, found := strings.Cut(hashed, "$")
		if !found {
			return false, ErrConfigMissing
		}
		salt, err := base64.RawStdEncoding.DecodeString(saltPart)
		if err != nil {
			return false, ErrConfigMissing
		}
		want, err := base64.RawStdEncoding.DecodeString(hashPart)
		if err != nil {
			return false, ErrConfigMissing
		}
		got := argon2.IDKey([]byte(passcode), salt, argonTime, argonMemory, argonThreads, uint32(len(want)))
		return subtle.ConstantTimeCompare(got, want) == 1, nil
	}

	if config.Cfg.AdminPasscode == "" {
		return false, ErrConfigMissing
	}
	return subtle.ConstantTimeCompare([]byte(passcode), []byte(config.Cfg.AdminPasscode)) == 1, nil
}

func secureCookies(c *gin.Context) bool {
	return c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
}

func setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		session.CookieName,
		token,
		maxAge,
		"/",
		"",
		secureCookies(c),
		true,
	)
}

// AdminGate creates middleware that requires a valid admin session.
// Browser requests are redirected to the login page; API requests get
// a 401 JSON response.
func AdminGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := session.TokenFromCookieHeader(c.GetHeader("Cookie"))
		sess, ok := session.VerifyEdge(token, config.Cfg.CookieSecret)
		if !ok {
			if wantsJSON(c) {
				AbortWithError(c, ErrUnauthorized)
				return
			}
			slog.Debug("AdminGate: redirecting unauthenticated request", "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set("adminSession", sess)
		c.Next()
	}
}

type loginRequest struct {
	Passcode string `json:"passcode"`
}

// AdminLogin handles POST /api/admin/login.
func AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ok, err := verifyPasscode(req.Passcode)
	if err != nil {
		slog.Error("AdminLogin: passcode verification unavailable", "error", err)
		AbortWithError(c, err)
		return
	}
	if !ok {
		AbortWithError(c, ErrInvalidCredentials)
		return
	}

	token, err := session.Issue(config.Cfg.CookieSecret)
	if err != nil {
		slog.Error("AdminLogin: failed to issue session", "error", err)
		AbortWithError(c, ErrInternalServer)
		return
	}

	setSessionCookie(c, token, session.CookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdminLogout clears the session cookie.
func AdminLogout(c *gin.Context) {
	setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
