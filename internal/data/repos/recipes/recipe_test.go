package recipes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func seedUser(t *testing.T, tx *gorm.DB, username string) *types.User {
	t.Helper()
	u := &types.User{
		Email:     username + "@example.com",
		Username:  username,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedRecipe(t *testing.T, tx *gorm.DB, author *types.User, name string) *types.Recipe {
	t.Helper()
	r := &types.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "steps",
		CookingTime: 10,
	}
	if err := tx.Create(r).Error; err != nil {
		t.Fatalf("seed recipe %s: %v", name, err)
	}
	return r
}

func TestRecipeRepo_ListFiltersByAuthorAndCart(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	author := seedUser(t, tx, "chef")
	other := seedUser(t, tx, "guest")
	r1 := seedRecipe(t, tx, author, "soup")
	seedRecipe(t, tx, other, "cake")

	if err := tx.Create(&types.ShoppingCartEntry{UserID: other.ID, RecipeID: r1.ID}).Error; err != nil {
		t.Fatalf("seed cart entry: %v", err)
	}

	got, total, err := repo.List(ctx, tx, ListFilter{AuthorID: author.ID})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].Name != "soup" {
		t.Fatalf("unexpected author filter result: total=%d got=%+v", total, got)
	}

	got, total, err = repo.List(ctx, tx, ListFilter{InCartOf: other.ID})
	if err != nil {
		t.Fatalf("list in cart: %v", err)
	}
	if total != 1 || len(got) != 1 || got[0].ID != r1.ID {
		t.Fatalf("unexpected cart filter result: total=%d", total)
	}

	got, _, err = repo.List(ctx, tx, ListFilter{AuthorID: other.ID, NotInCartOf: other.ID})
	if err != nil {
		t.Fatalf("list not in cart: %v", err)
	}
	if len(got) != 1 || got[0].Name != "cake" {
		t.Fatalf("expected only the un-carted recipe, got %+v", got)
	}
}

func TestRecipeRepo_CountByAuthors(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewRecipeRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	a := seedUser(t, tx, "prolific")
	b := seedUser(t, tx, "quiet")
	seedRecipe(t, tx, a, "one")
	seedRecipe(t, tx, a, "two")

	counts, err := repo.CountByAuthors(ctx, tx, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("count by authors: %v", err)
	}
	if counts[a.ID] != 2 {
		t.Fatalf("expected 2 recipes for a, got %d", counts[a.ID])
	}
	if counts[b.ID] != 0 {
		t.Fatalf("expected 0 recipes for b, got %d", counts[b.ID])
	}
}

func TestRecipeIngredientRepo_ReplaceAndListPreloadsIngredient(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ingRepo := NewIngredientRepo(gdb, testutil.Logger(t))
	riRepo := NewRecipeIngredientRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	author := seedUser(t, tx, "writer")
	recipe := seedRecipe(t, tx, author, "omelette")

	ings := []*types.Ingredient{
		{Name: "eggs", MeasurementUnit: "pcs"},
		{Name: "butter", MeasurementUnit: "g"},
	}
	if _, err := ingRepo.CreateBatch(ctx, tx, ings); err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}

	rows := []*types.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: ings[0].ID, Amount: 3},
		{RecipeID: recipe.ID, IngredientID: ings[1].ID, Amount: 20},
	}
	if err := riRepo.ReplaceForRecipe(ctx, tx, recipe.ID, rows); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// Replace again with a single row; the old ones must be gone.
	if err := riRepo.ReplaceForRecipe(ctx, tx, recipe.ID, []*types.RecipeIngredient{
		{RecipeID: recipe.ID, IngredientID: ings[0].ID, Amount: 5},
	}); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	got, err := riRepo.ListByRecipeIDs(ctx, tx, []uuid.UUID{recipe.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row after replace, got %d", len(got))
	}
	if got[0].Ingredient == nil || got[0].Ingredient.Name != "eggs" {
		t.Fatalf("expected preloaded ingredient, got %+v", got[0].Ingredient)
	}
	if got[0].Amount != 5 {
		t.Fatalf("expected amount 5, got %d", got[0].Amount)
	}
}
