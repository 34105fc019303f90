package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestDecodeRecipeImage_DataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("jpeg-bytes"))
	raw, contentType, err := DecodeDataURL("data:image/jpeg;base64," + payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "jpeg-bytes" {
		t.Fatalf("unexpected bytes %q", raw)
	}
	if contentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", contentType)
	}
}

func TestDecodeRecipeImage_BareBase64DefaultsToPNG(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	raw, contentType, err := DecodeDataURL(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != "png-bytes" || contentType != "image/png" {
		t.Fatalf("unexpected result %q %q", raw, contentType)
	}
}

func TestDecodeRecipeImage_RejectsGarbage(t *testing.T) {
	if _, _, err := DecodeDataURL("not base64!!!"); err == nil {
		t.Fatalf("expected error for invalid base64")
	}
	if _, _, err := DecodeDataURL("data:image/png;base64"); err == nil {
		t.Fatalf("expected error for malformed data url")
	}
	if _, _, err := DecodeDataURL(""); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestImageExtension(t *testing.T) {
	if got := imageExtension("image/jpeg"); got != "jpg" {
		t.Fatalf("unexpected extension %q", got)
	}
	if got := imageExtension("image/png"); got != "png" {
		t.Fatalf("unexpected extension %q", got)
	}
	if got := imageExtension("application/octet-stream"); got != "png" {
		t.Fatalf("unexpected fallback extension %q", got)
	}
}

func TestValidateInput_AmountBounds(t *testing.T) {
	rs := &recipeService{}
	base := RecipeInput{
		Name:        "soup",
		Text:        "boil it",
		CookingTime: 10,
	}

	input := base
	input.Ingredients = []RecipeIngredientInput{{ID: uuid.New(), Amount: 0}}
	if err := rs.validateInput(context.Background(), &input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero amount, got %v", err)
	}

	input = base
	input.Ingredients = []RecipeIngredientInput{{ID: uuid.New(), Amount: maxAggregatedAmount + 1}}
	if err := rs.validateInput(context.Background(), &input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for over-limit amount, got %v", err)
	}
}
