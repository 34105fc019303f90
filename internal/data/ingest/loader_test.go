package ingest

import (
	"context"
	"strings"
	"testing"

	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	"github.com/foodgram/foodgram-backend/internal/data/repos/testutil"
	types "github.com/foodgram/foodgram-backend/internal/domain"
)

func TestParseJSON(t *testing.T) {
	input := `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"}
	]`
	rows, err := ParseJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "flour" || rows[0].MeasurementUnit != "g" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON(strings.NewReader(`{"name": "flour"}`)); err == nil {
		t.Fatal("expected error for non-array json")
	}
}

func TestParseCSV(t *testing.T) {
	input := "flour,g\nmilk,ml\n"
	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Name != "milk" || rows[1].MeasurementUnit != "ml" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestParseCSVSkipsHeader(t *testing.T) {
	input := "name,measurement_unit\nflour,g\n"
	rows, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "flour" {
		t.Fatalf("expected single flour row, got %+v", rows)
	}
}

func TestParseCSVWrongFieldCount(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("flour,g,extra\n")); err == nil {
		t.Fatal("expected error for 3-field row")
	}
}

func TestNormalizeTrimsAndDedupes(t *testing.T) {
	rows, err := normalize([]*types.Ingredient{
		{Name: "  flour ", MeasurementUnit: " g "},
		{Name: "flour", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected duplicate collapsed to 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "flour" || rows[0].MeasurementUnit != "g" {
		t.Fatalf("expected trimmed fields, got %+v", rows[0])
	}
}

func TestNormalizeRejectsEmptyFields(t *testing.T) {
	if _, err := normalize([]*types.Ingredient{{Name: "flour", MeasurementUnit: "  "}}); err == nil {
		t.Fatal("expected error for empty measurement_unit")
	}
}

func TestLoaderUnsupportedExtension(t *testing.T) {
	l := NewLoader(testutil.Logger(t), nil)
	if _, err := l.LoadFile(context.Background(), "fixtures/ingredients.xml", strings.NewReader("")); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoaderLoadFile(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	log := testutil.Logger(t)
	repo := recipesrepo.NewIngredientRepo(tx, log)

	l := NewLoader(log, repo)
	l.workers = 1 // batches share the test transaction

	input := `[
		{"name": "flour", "measurement_unit": "g"},
		{"name": "flour", "measurement_unit": "g"},
		{"name": "milk", "measurement_unit": "ml"}
	]`
	n, err := l.LoadFile(context.Background(), "ingredients.json", strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", n)
	}

	// Re-loading the same fixture inserts nothing.
	n, err = l.LoadFile(context.Background(), "ingredients.json", strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadFile (second): %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 inserted rows on reload, got %d", n)
	}
}
