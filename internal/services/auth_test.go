package services

import (
	"regexp"
	"testing"
)

func TestGenerateAuthToken(t *testing.T) {
	hexToken := regexp.MustCompile(`^[0-9a-f]{40}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := generateAuthToken()
		if err != nil {
			t.Fatalf("generateAuthToken: %v", err)
		}
		if !hexToken.MatchString(token) {
			t.Fatalf("token %q is not 40 lowercase hex chars", token)
		}
		if seen[token] {
			t.Fatalf("token %q generated twice", token)
		}
		seen[token] = true
	}
}
