package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameGuestName(t *testing.T) {
	assert.True(t, SameGuestName("Maria Silva", "maria silva"))
	assert.True(t, SameGuestName("  Maria Silva  ", "MARIA SILVA"))
	assert.False(t, SameGuestName("Maria Silva", "Maria Souza"))

	// Composed vs decomposed accents must compare equal.
	assert.True(t, SameGuestName("João", "João"))
}

func TestNormalizeGuestName(t *testing.T) {
	assert.Equal(t, "joão souza", NormalizeGuestName("  João Souza "))
	assert.Equal(t, "", NormalizeGuestName("   "))
}
