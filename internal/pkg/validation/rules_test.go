package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@x.com", "first.last@school.co.uk", "admin-1@center.org"}
	invalid := []string{"", "plain", "a@x", "a@x.toolong", "@x.com", "a b@x.com"}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("secret1"))
	assert.True(t, IsValidPassword("123456"))
	assert.False(t, IsValidPassword("12345"))
	assert.False(t, IsValidPassword(""))
}
