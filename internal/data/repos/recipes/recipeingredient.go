package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type RecipeIngredientRepo interface {
	ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, items []*types.RecipeIngredient) error
	ListByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error)
}

type recipeIngredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeIngredientRepo(db *gorm.DB, baseLog *logger.Logger) RecipeIngredientRepo {
	repoLog := baseLog.With("repo", "RecipeIngredientRepo")
	return &recipeIngredientRepo{db: db, log: repoLog}
}

func (rir *recipeIngredientRepo) ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, items []*types.RecipeIngredient) error {
	transaction := tx
	if transaction == nil {
		transaction = rir.db
	}

	if err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

// ListByRecipeIDs preloads Ingredient so callers can merge by
// (name, measurement unit) without extra round trips.
func (rir *recipeIngredientRepo) ListByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeIngredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = rir.db
	}

	var results []*types.RecipeIngredient
	if len(recipeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
