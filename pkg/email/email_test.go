package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "jane.doe@example.org", Normalize("  Jane.Doe@Example.ORG "))
	assert.Equal(t, "", Normalize("   "))
}

func TestIsValid(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe@example.org", "x+tag@sub.domain.io"}
	for _, addr := range valid {
		assert.True(t, IsValid(addr), addr)
	}

	invalid := []string{"", "plain", "@example.org", "a@", "a@nodot", "a@.x", "a@x.", "a@@b.co"}
	for _, addr := range invalid {
		assert.False(t, IsValid(addr), addr)
	}
}

func TestDeriveNameFromEmail(t *testing.T) {
	first, last := DeriveNameFromEmail("jane.doe@example.org")
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	first, last = DeriveNameFromEmail("admin@example.org")
	assert.Equal(t, "Admin", first)
	assert.Equal(t, "Volunteer", last)

	first, last = DeriveNameFromEmail("...@example.org")
	assert.Equal(t, "Volunteer", first)
	assert.Equal(t, "Volunteer", last)
}
