package services

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUsername(t *testing.T) {
	name := GenerateUsername("Ada Lovelace")
	assert.Regexp(t, regexp.MustCompile(`^adalovelace[a-z0-9]{4}$`), name)

	assert.NotEqual(t, GenerateUsername("Ada Lovelace"), GenerateUsername("Ada Lovelace"))
}

func TestGenerateUsername_EmptyName(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+[a-z0-9]{4}$`), GenerateUsername("  !! "))
}

func TestGeneratePassword(t *testing.T) {
	first := generatePassword()
	assert.Len(t, first, 24)
	assert.NotEqual(t, first, generatePassword())
}
