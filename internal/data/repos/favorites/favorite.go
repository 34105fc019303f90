package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type FavoriteRepo interface {
	Add(ctx context.Context, tx *gorm.DB, fav *types.Favorite) error
	Remove(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error)
	RecipeIDsFavorited(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	repoLog := baseLog.With("repo", "FavoriteRepo")
	return &favoriteRepo{db: db, log: repoLog}
}

func (fr *favoriteRepo) Add(ctx context.Context, tx *gorm.DB, fav *types.Favorite) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(fav).Error
}

func (fr *favoriteRepo) Remove(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	res := transaction.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.Favorite{})
	return res.RowsAffected, res.Error
}

func (fr *favoriteRepo) RecipeIDsFavorited(ctx context.Context, tx *gorm.DB, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	result := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
