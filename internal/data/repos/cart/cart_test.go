package cart

import (
	"context"
	"testing"

	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func seedUserAndRecipe(t *testing.T, tx *gorm.DB, name string) (*types.User, *types.Recipe) {
	t.Helper()
	u := &types.User{
		Email:     name + "@example.com",
		Username:  name,
		Password:  "hashed",
		FirstName: "Cart",
		LastName:  "Tester",
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	r := &types.Recipe{AuthorID: u.ID, Name: name + " dish", Text: "x", CookingTime: 5}
	if err := tx.Create(r).Error; err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	return u, r
}

func TestCartRepo_AddDuplicateIsUniqueViolation(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCartRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	u, r := seedUserAndRecipe(t, tx, "dupcart")

	if err := repo.Add(ctx, tx, &types.ShoppingCartEntry{UserID: u.ID, RecipeID: r.ID}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := repo.Add(ctx, tx, &types.ShoppingCartEntry{UserID: u.ID, RecipeID: r.ID})
	if err == nil || !repos.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestCartRepo_RemoveReportsAffectedRows(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCartRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	u, r := seedUserAndRecipe(t, tx, "rmcart")

	if err := repo.Add(ctx, tx, &types.ShoppingCartEntry{UserID: u.ID, RecipeID: r.ID}); err != nil {
		t.Fatalf("add: %v", err)
	}

	n, err := repo.Remove(ctx, tx, u.ID, r.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 affected row, got %d", n)
	}

	n, err = repo.Remove(ctx, tx, u.ID, r.ID)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 affected rows on repeat remove, got %d", n)
	}
}

func TestCartRepo_ListRecipeIDsByUser(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewCartRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	u, r1 := seedUserAndRecipe(t, tx, "lister")
	r2 := &types.Recipe{AuthorID: u.ID, Name: "second", Text: "x", CookingTime: 1}
	if err := tx.Create(r2).Error; err != nil {
		t.Fatalf("seed second recipe: %v", err)
	}

	for _, rec := range []*types.Recipe{r1, r2} {
		if err := repo.Add(ctx, tx, &types.ShoppingCartEntry{UserID: u.ID, RecipeID: rec.ID}); err != nil {
			t.Fatalf("add %s: %v", rec.Name, err)
		}
	}

	ids, err := repo.ListRecipeIDsByUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 cart entries, got %d", len(ids))
	}
}
