// Stateless signed admin sessions.
//
// A session token is the entire durable state of an admin login: there is no
// server-side session row. The token is
//
//	base64url(JSON payload) + "." + hex(HMAC-SHA256(payload, secret))
//
// and verification recomputes the signature over the encoded payload before
// anything is parsed, so tamper detection covers every payload field.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Version is the only payload version this codec accepts.
const Version = 1

// TTL is the fixed session lifetime. There is no renewal; a new login
// overwrites the cookie.
const TTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("cookie secret is not configured")

// Session is the signed cookie payload. Timestamps are unix milliseconds.
type Session struct {
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
	Version   int   `json:"v"`
}

// Issue creates a new signed session token valid for TTL.
func Issue(secret string) (string, error) {
	return IssueAt(secret, time.Now())
}

// IssueAt is Issue with an explicit clock, for tests.
func IssueAt(secret string, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	payload := Session{
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(TTL).UnixMilli(),
		Version:   Version,
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(raw)

	return encoded + "." + signPayload(encoded, secret), nil
}

// Verify checks a token and returns its session. Malformed input of any kind
// yields (nil, false); this function never panics on attacker-controlled data.
func Verify(token, secret string) (*Session, bool) {
	return VerifyAt(token, secret, time.Now())
}

// VerifyAt is Verify with an explicit clock, for tests.
func VerifyAt(token, secret string, now time.Time) (*Session, bool) {
	if secret == "" {
		return nil, false
	}

	payloadStr, signature, found := strings.Cut(token, ".")
	if !found || payloadStr == "" || signature == "" {
		return nil, false
	}

	// Signature check first: nothing is parsed from an unauthenticated token.
	expected := signPayload(payloadStr, secret)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return nil, false
	}

	raw, err := base64.RawURLEncoding.DecodeString(payloadStr)
	if err != nil {
		return nil, false
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}

	// Forward-compatibility gate: unknown versions are rejected outright.
	if s.Version != Version {
		return nil, false
	}

	if now.UnixMilli() > s.ExpiresAt {
		return nil, false
	}

	return &s, true
}

func signPayload(payload, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
