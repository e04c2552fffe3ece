package session

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-cookie-secret"

// Both verifiers must agree on every token. All table tests below run against
// this map so the two code paths never drift apart.
var verifiers = map[string]func(token, secret string, now time.Time) (*Session, bool){
	"native": VerifyAt,
	"edge":   VerifyEdgeAt,
}

func TestIssueRequiresSecret(t *testing.T) {
	_, err := Issue("")
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	token, err := IssueAt(testSecret, now)
	require.NoError(t, err)

	for name, verify := range verifiers {
		t.Run(name, func(t *testing.T) {
			s, ok := verify(token, testSecret, now)
			require.True(t, ok)
			assert.Equal(t, now.UnixMilli(), s.IssuedAt)
			assert.Equal(t, now.Add(TTL).UnixMilli(), s.ExpiresAt)
			assert.Equal(t, Version, s.Version)

			// Still valid one minute before expiry, invalid one minute after.
			_, ok = verify(token, testSecret, now.Add(TTL-time.Minute))
			assert.True(t, ok)
			_, ok = verify(token, testSecret, now.Add(TTL+time.Minute))
			assert.False(t, ok)
		})
	}
}

func TestVerifyRejectsMalformedTokens(t *testing.T) {
	now := time.Now()
	token, err := IssueAt(testSecret, now)
	require.NoError(t, err)

	payloadStr := token[:len(token)-65]

	cases := map[string]string{
		"empty":             "",
		"no separator":      "justonepart",
		"missing signature": payloadStr + ".",
		"missing payload":   "." + token[len(payloadStr)+1:],
		"garbage payload":   "!!notbase64!!." + token[len(payloadStr)+1:],
	}

	for name, verify := range verifiers {
		for caseName, bad := range cases {
			t.Run(name+"/"+caseName, func(t *testing.T) {
				s, ok := verify(bad, testSecret, now)
				assert.False(t, ok)
				assert.Nil(t, s)
			})
		}
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	now := time.Now()
	token, err := IssueAt(testSecret, now)
	require.NoError(t, err)

	sigStart := len(token) - 64

	for name, verify := range verifiers {
		t.Run(name, func(t *testing.T) {
			// Flipping any signature character must invalidate the token.
			for i := sigStart; i < len(token); i++ {
				mutated := []byte(token)
				if mutated[i] == 'a' {
					mutated[i] = 'b'
				} else {
					mutated[i] = 'a'
				}
				_, ok := verify(string(mutated), testSecret, now)
				assert.False(t, ok, "flipped signature char at %d accepted", i)
			}
		})
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	now := time.Now()
	token, err := IssueAt(testSecret, now)
	require.NoError(t, err)

	// Extend expiry in the payload without re-signing.
	payloadStr, signature, _ := splitToken(t, token)
	raw, err := base64.RawURLEncoding.DecodeString(payloadStr)
	require.NoError(t, err)

	var s Session
	require.NoError(t, json.Unmarshal(raw, &s))
	s.ExpiresAt = now.Add(100 * TTL).UnixMilli()

	forged, err := json.Marshal(s)
	require.NoError(t, err)
	forgedToken := base64.RawURLEncoding.EncodeToString(forged) + "." + signature

	for name, verify := range verifiers {
		t.Run(name, func(t *testing.T) {
			_, ok := verify(forgedToken, testSecret, now)
			assert.False(t, ok)
		})
	}
}

func TestVerifyRejectsUnknownVersion(t *testing.T) {
	// A version != 1 is rejected even when the signature over the altered
	// payload is genuine.
	now := time.Now()
	payload, err := json.Marshal(Session{
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(TTL).UnixMilli(),
		Version:   2,
	})
	require.NoError(t, err)

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	token := encoded + "." + signPayload(encoded, testSecret)

	for name, verify := range verifiers {
		t.Run(name, func(t *testing.T) {
			_, ok := verify(token, testSecret, now)
			assert.False(t, ok)
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := IssueAt(testSecret, now)
	require.NoError(t, err)

	for name, verify := range verifiers {
		t.Run(name, func(t *testing.T) {
			_, ok := verify(token, "other-secret", now)
			assert.False(t, ok)
			_, ok = verify(token, "", now)
			assert.False(t, ok)
		})
	}
}

func TestImplementationsAgree(t *testing.T) {
	now := time.Now()
	valid, err := IssueAt(testSecret, now)
	require.NoError(t, err)
	expired, err := IssueAt(testSecret, now.Add(-TTL-time.Hour))
	require.NoError(t, err)

	tokens := []string{
		valid,
		expired,
		"",
		"garbage",
		valid + "x",
		"x" + valid,
	}

	for i, token := range tokens {
		nativeSession, nativeOK := VerifyAt(token, testSecret, now)
		edgeSession, edgeOK := VerifyEdgeAt(token, testSecret, now)

		assert.Equal(t, nativeOK, edgeOK, "token %d: validity disagreement", i)
		assert.Equal(t, nativeSession, edgeSession, "token %d: session disagreement", i)
	}
}

func TestTokenFromCookieHeader(t *testing.T) {
	token, err := Issue(testSecret)
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		want   string
	}{
		"single cookie":  {CookieName + "=" + token, token},
		"among others":   {"theme=dark; " + CookieName + "=" + token + "; lang=pt", token},
		"absent":         {"theme=dark", ""},
		"empty header":   {"", ""},
		"empty value":    {CookieName + "=", ""},
		"url-encoded":    {CookieName + "=" + "abc%2Edef", "abc.def"},
		"no equals sign": {CookieName, ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, TokenFromCookieHeader(tc.header))
		})
	}
}

func splitToken(t *testing.T, token string) (payload, signature string, ok bool) {
	t.Helper()
	i := len(token) - 65
	require.Greater(t, i, 0)
	require.Equal(t, byte('.'), token[i])
	return token[:i], token[i+1:], true
}
