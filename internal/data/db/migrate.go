package db

import (
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Reference data
		&types.Ingredient{},
		&types.Tag{},

		// Recipes
		&types.Recipe{},
		&types.RecipeIngredient{},
		&types.RecipeTag{},

		// Per-user relations
		&types.Favorite{},
		&types.ShoppingCartEntry{},
		&types.Subscription{},
		&types.ShortLink{},

		// Activity
		&types.UserEvent{},
	)
}
