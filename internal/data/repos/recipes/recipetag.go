package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type RecipeTagRepo interface {
	ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, items []*types.RecipeTag) error
	ListByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeTag, error)
}

type recipeTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	repoLog := baseLog.With("repo", "RecipeTagRepo")
	return &recipeTagRepo{db: db, log: repoLog}
}

func (rtr *recipeTagRepo) ReplaceForRecipe(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, items []*types.RecipeTag) error {
	transaction := tx
	if transaction == nil {
		transaction = rtr.db
	}

	if err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&items).Error
}

func (rtr *recipeTagRepo) ListByRecipeIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.RecipeTag, error) {
	transaction := tx
	if transaction == nil {
		transaction = rtr.db
	}

	var results []*types.RecipeTag
	if len(recipeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Tag").
		Where("recipe_id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
