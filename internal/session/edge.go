package session

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// VerifyEdge is the route-gate counterpart of Verify. It is built only from
// the bare SHA-256 primitive so it stays portable to restricted runtimes that
// lack a keyed-hash library, and it must agree with Verify on validity for
// every (token, secret, now) triple. The codec tests hold both
// implementations to that contract.
func VerifyEdge(token, secret string) (*Session, bool) {
	return VerifyEdgeAt(token, secret, time.Now())
}

// VerifyEdgeAt is VerifyEdge with an explicit clock, for tests.
func VerifyEdgeAt(token, secret string, now time.Time) (*Session, bool) {
	if secret == "" {
		return nil, false
	}

	payloadStr, signature, found := strings.Cut(token, ".")
	if !found || payloadStr == "" || signature == "" {
		return nil, false
	}

	// Plain comparison: this path has no constant-time primitive. Accepted
	// weaker guarantee of the gate verifier; the login path uses hmac.Equal.
	if signature != hmacSHA256Hex(secret, payloadStr) {
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

	if s.Version != Version {
		return nil, false
	}

	if now.UnixMilli() > s.ExpiresAt {
		return nil, false
	}

	return &s, true
}

// hmacSHA256Hex computes HMAC-SHA256 from the hash function alone (RFC 2104),
// independent of crypto/hmac.
func hmacSHA256Hex(key, message string) string {
	k := []byte(key)
	if len(k) > sha256.BlockSize {
		sum := sha256.Sum256(k)
		k = sum[:]
	}

	ipad := make([]byte, sha256.BlockSize)
	opad := make([]byte, sha256.BlockSize)
	copy(ipad, k)
	copy(opad, k)
	for i := range ipad {
		ipad[i] ^= 0x36
		opad[i] ^= 0x5c
	}

	inner := sha256.New()
	inner.Write(ipad)
	inner.Write([]byte(message))

	outer := sha256.New()
	outer.Write(opad)
	outer.Write(inner.Sum(nil))

	return hex.EncodeToString(outer.Sum(nil))
}
