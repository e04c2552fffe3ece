package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeGuestName prepares a guest name for comparison: Unicode NFC
// normalization (accented Brazilian names arrive in both composed and
// decomposed forms), trimmed, lowercased.
func NormalizeGuestName(name string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
}

// SameGuestName reports whether two guest names match under normalization.
// The name is the only credential for guest-initiated cancellation, so the
// comparison is deliberately forgiving about case and whitespace.
func SameGuestName(a, b string) bool {
	return NormalizeGuestName(a) == NormalizeGuestName(b)
}
