package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
)

// The sqlite development mode has no uuid or now() functions, so the
// schema must migrate cleanly without database-side defaults.
func TestSqliteMigrateAndCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foodgram.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := AutoMigrateAll(gdb); err != nil {
		t.Fatalf("automigrate on sqlite: %v", err)
	}

	u := &types.User{
		Email:     "dev@example.com",
		Username:  "dev",
		Password:  "hash",
		FirstName: "Dev",
		LastName:  "User",
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("expected user id to be generated on create")
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set on create")
	}

	ing := &types.Ingredient{Name: "salt", MeasurementUnit: "g"}
	if err := gdb.Create(ing).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	if ing.ID == uuid.Nil {
		t.Fatal("expected ingredient id to be generated on create")
	}

	// A caller-supplied id survives the hook.
	fixed := uuid.New()
	tag := &types.Tag{ID: fixed, Name: "dinner", Slug: "dinner"}
	if err := gdb.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.ID != fixed {
		t.Fatalf("expected id %s to be kept, got %s", fixed, tag.ID)
	}
}
