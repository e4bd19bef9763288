package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const usernameAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

var nonUsernameChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateUsername derives a username from a display name: spaces removed,
// lower-cased, followed by four random characters. An empty name falls back
// to a random adjective and noun.
func GenerateUsername(name string) string {
	base := nonUsernameChars.ReplaceAllString(strings.ToLower(name), "")
	if base == "" {
		return GenerateRandomUsername()
	}
	return base + randomString(4)
}

// GenerateRandomUsername generates a random username using adjectives and nouns
func GenerateRandomUsername() string {
	adjectives := []string{
		"sunny", "breezy", "cozy", "bright", "quiet", "spacious", "modern", "rustic",
		"charming", "elegant", "airy", "classic", "serene", "urban", "coastal", "lofty",
	}

	nouns := []string{
		"villa", "cottage", "loft", "manor", "cabin", "studio", "bungalow", "terrace",
		"harbor", "garden", "meadow", "ridge", "hollow", "brook", "summit", "haven",
	}

	return fmt.Sprintf("%s%s%s", pick(adjectives), pick(nouns), randomString(4))
}

// generatePassword returns a random secret for accounts created through Google sign-in.
func generatePassword() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		return randomString(16)
	}
	return hex.EncodeToString(b)
}

func randomString(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = usernameAlphabet[randomInt(len(usernameAlphabet))]
	}
	return string(out)
}

func pick(words []string) string {
	return words[randomInt(len(words))]
}

func randomInt(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}
