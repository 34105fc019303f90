package shortlink

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func TestShortLinkRepo_RoundTrip(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewShortLinkRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	u := &types.User{Email: "sl@example.com", Username: "sl", Password: "h", FirstName: "S", LastName: "L"}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r := &types.Recipe{AuthorID: u.ID, Name: "linked", Text: "x", CookingTime: 1}
	if err := tx.Create(r).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}

	if err := repo.Create(ctx, tx, &types.ShortLink{Code: "ab12Cd", RecipeID: r.ID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	byCode, err := repo.GetByCode(ctx, tx, "ab12Cd")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if byCode.RecipeID != r.ID {
		t.Fatalf("code resolves to wrong recipe")
	}

	byRecipe, err := repo.GetByRecipeID(ctx, tx, r.ID)
	if err != nil {
		t.Fatalf("get by recipe: %v", err)
	}
	if byRecipe.Code != "ab12Cd" {
		t.Fatalf("unexpected code %q", byRecipe.Code)
	}

	_, err = repo.GetByCode(ctx, tx, "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}

	err = repo.Create(ctx, tx, &types.ShortLink{Code: "other0", RecipeID: r.ID})
	if err == nil || !repos.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation on second link for recipe, got %v", err)
	}
}
