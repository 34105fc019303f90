package recipes

import (
	"context"
	"testing"

	types "github.com/foodgram/foodgram-backend/internal/domain"

	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
)

func TestIngredientRepo_CreateBatchSkipsDuplicates(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewIngredientRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	first := []*types.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	}
	inserted, err := repo.CreateBatch(ctx, tx, first)
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}

	// Same (name, unit) is a no-op; same name with another unit is new.
	second := []*types.Ingredient{
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "flour", MeasurementUnit: "kg"},
	}
	inserted, err = repo.CreateBatch(ctx, tx, second)
	if err != nil {
		t.Fatalf("create batch again: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("expected 1 inserted on conflict batch, got %d", inserted)
	}
}

func TestIngredientRepo_ListByNamePrefix(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewIngredientRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	seed := []*types.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salmon", MeasurementUnit: "g"},
		{Name: "pepper", MeasurementUnit: "g"},
	}
	if _, err := repo.CreateBatch(ctx, tx, seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := repo.ListByNamePrefix(ctx, tx, "sal")
	if err != nil {
		t.Fatalf("list by prefix: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for 'sal', got %d", len(got))
	}
	for _, ing := range got {
		if ing.Name != "salt" && ing.Name != "salmon" {
			t.Fatalf("unexpected match %q", ing.Name)
		}
	}

	got, err = repo.ListByNamePrefix(ctx, tx, "SAL")
	if err != nil {
		t.Fatalf("list by upper prefix: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("prefix match should be case-insensitive, got %d", len(got))
	}
}
