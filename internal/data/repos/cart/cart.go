package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type CartRepo interface {
	Add(ctx context.Context, tx *gorm.DB, entry *types.ShoppingCartEntry) error
	Remove(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error)
	ListRecipeIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error)
	RecipeIDsInCart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type cartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	repoLog := baseLog.With("repo", "CartRepo")
	return &cartRepo{db: db, log: repoLog}
}

func (cr *cartRepo) Add(ctx context.Context, tx *gorm.DB, entry *types.ShoppingCartEntry) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).Create(entry).Error
}

func (cr *cartRepo) Remove(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.ShoppingCartEntry{})
	return res.RowsAffected, res.Error
}

func (cr *cartRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *cartRepo) ListRecipeIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCartEntry{}).
		Where("user_id = ?", userID).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (cr *cartRepo) RecipeIDsInCart(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
