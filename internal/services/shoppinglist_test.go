package services

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	types "github.com/foodgram/foodgram-backend/internal/domain"
)

func row(name, unit string, amount int64) *types.RecipeIngredient {
	return &types.RecipeIngredient{
		RecipeID:     uuid.New(),
		IngredientID: uuid.New(),
		Ingredient:   &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit},
		Amount:       amount,
	}
}

func TestAggregateCartLines_EmptyInputYieldsEmptyList(t *testing.T) {
	lines, err := aggregateCartLines(nil)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty result, got %d lines", len(lines))
	}
}

func TestAggregateCartLines_SumsAcrossRecipes(t *testing.T) {
	rows := []*types.RecipeIngredient{
		row("eggs", "pcs", 2),
		row("butter", "g", 20),
		row("eggs", "pcs", 4),
		row("salt", "g", 1),
	}

	lines, err := aggregateCartLines(rows)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	want := []types.AggregatedLine{
		{Name: "butter", MeasurementUnit: "g", TotalAmount: 20},
		{Name: "eggs", MeasurementUnit: "pcs", TotalAmount: 6},
		{Name: "salt", MeasurementUnit: "g", TotalAmount: 1},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("unexpected result:\n got %+v\nwant %+v", lines, want)
	}
}

func TestAggregateCartLines_MergesByNameAndUnitNotID(t *testing.T) {
	// Two distinct ingredient rows carrying the same (name, unit) must
	// collapse into one line.
	a := row("sugar", "g", 10)
	b := row("sugar", "g", 15)
	if a.IngredientID == b.IngredientID {
		t.Fatalf("test rows must have distinct ingredient ids")
	}

	lines, err := aggregateCartLines([]*types.RecipeIngredient{a, b})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].TotalAmount != 25 {
		t.Fatalf("expected total 25, got %d", lines[0].TotalAmount)
	}
}

func TestAggregateCartLines_SameNameDifferentUnitStaysSeparate(t *testing.T) {
	lines, err := aggregateCartLines([]*types.RecipeIngredient{
		row("flour", "g", 200),
		row("flour", "kg", 1),
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	// Ties on name order by unit ascending.
	if lines[0].MeasurementUnit != "g" || lines[1].MeasurementUnit != "kg" {
		t.Fatalf("unexpected unit order: %q then %q", lines[0].MeasurementUnit, lines[1].MeasurementUnit)
	}
}

func TestAggregateCartLines_OrdersByteWise(t *testing.T) {
	// Byte-wise ordering puts all uppercase before lowercase.
	lines, err := aggregateCartLines([]*types.RecipeIngredient{
		row("apple", "pcs", 1),
		row("Banana", "pcs", 1),
		row("cherry", "pcs", 1),
	})
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	got := []string{lines[0].Name, lines[1].Name, lines[2].Name}
	want := []string{"Banana", "apple", "cherry"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order: got %v want %v", got, want)
	}
}

func TestAggregateCartLines_Idempotent(t *testing.T) {
	rows := []*types.RecipeIngredient{
		row("eggs", "pcs", 2),
		row("milk", "ml", 500),
		row("eggs", "pcs", 1),
	}

	first, err := aggregateCartLines(rows)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := aggregateCartLines(rows)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestAggregateCartLines_DanglingIngredientIsIntegrityError(t *testing.T) {
	bad := row("eggs", "pcs", 2)
	bad.Ingredient = nil

	_, err := aggregateCartLines([]*types.RecipeIngredient{row("milk", "ml", 100), bad})
	if err == nil {
		t.Fatalf("expected error for dangling ingredient")
	}
	if !strings.Contains(err.Error(), ErrDataIntegrity.Error()) {
		t.Fatalf("expected data integrity error, got %v", err)
	}
}

func TestAggregateCartLines_NonPositiveAmountIsIntegrityError(t *testing.T) {
	_, err := aggregateCartLines([]*types.RecipeIngredient{row("milk", "ml", 0)})
	if err == nil {
		t.Fatalf("expected error for zero amount")
	}

	_, err = aggregateCartLines([]*types.RecipeIngredient{row("milk", "ml", -5)})
	if err == nil {
		t.Fatalf("expected error for negative amount")
	}
}

func TestAggregateCartLines_OverflowCeiling(t *testing.T) {
	// Each row is fine on its own; the merged total crosses the ceiling.
	rows := []*types.RecipeIngredient{
		row("water", "ml", maxAggregatedAmount),
		row("water", "ml", 1),
	}
	_, err := aggregateCartLines(rows)
	if err == nil {
		t.Fatalf("expected overflow error")
	}
	if !strings.Contains(err.Error(), ErrDataIntegrity.Error()) {
		t.Fatalf("expected data integrity error, got %v", err)
	}

	// At exactly the ceiling the total is still valid.
	lines, err := aggregateCartLines([]*types.RecipeIngredient{row("water", "ml", maxAggregatedAmount)})
	if err != nil {
		t.Fatalf("aggregate at ceiling: %v", err)
	}
	if lines[0].TotalAmount != maxAggregatedAmount {
		t.Fatalf("expected total %d, got %d", maxAggregatedAmount, lines[0].TotalAmount)
	}
}

func TestAggregateCartLines_HugeAmountsDoNotWrap(t *testing.T) {
	// Amounts near MaxInt64 would wrap the running total negative if they
	// were summed before being bounds-checked.
	rows := []*types.RecipeIngredient{
		row("water", "ml", 5),
		row("water", "ml", math.MaxInt64),
	}
	lines, err := aggregateCartLines(rows)
	if err == nil {
		t.Fatalf("expected integrity error, got lines %+v", lines)
	}
	if !strings.Contains(err.Error(), ErrDataIntegrity.Error()) {
		t.Fatalf("expected data integrity error, got %v", err)
	}

	// A single over-ceiling row fails too, whatever the order.
	_, err = aggregateCartLines([]*types.RecipeIngredient{row("water", "ml", math.MaxInt64)})
	if err == nil {
		t.Fatalf("expected integrity error for MaxInt64 amount")
	}
}

func TestRenderShoppingListText(t *testing.T) {
	body := RenderShoppingListText([]types.AggregatedLine{
		{Name: "butter", MeasurementUnit: "g", TotalAmount: 20},
		{Name: "eggs", MeasurementUnit: "pcs", TotalAmount: 6},
	})

	want := "Shopping list:\n- butter (g): 20\n- eggs (pcs): 6\n"
	if body != want {
		t.Fatalf("unexpected body:\n got %q\nwant %q", body, want)
	}
}

func TestRenderShoppingListText_EmptyListIsHeaderOnly(t *testing.T) {
	body := RenderShoppingListText(nil)
	if body != "Shopping list:\n" {
		t.Fatalf("unexpected body %q", body)
	}
}
