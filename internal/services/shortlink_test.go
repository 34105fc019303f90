package services

import (
	"strings"
	"testing"
)

func TestGenerateShortCode_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateShortCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != shortCodeLength {
			t.Fatalf("expected length %d, got %q", shortCodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(shortCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestGenerateShortCode_NotConstant(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateShortCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d unique out of 50", len(seen))
	}
}
