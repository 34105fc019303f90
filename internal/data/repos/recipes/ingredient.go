package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type IngredientRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error)
	ListByNamePrefix(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error)
	CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	repoLog := baseLog.With("repo", "IngredientRepo")
	return &ingredientRepo{db: db, log: repoLog}
}

// CreateBatch inserts ingredients, silently skipping rows whose (name, unit)
// pair already exists. Returns the number of rows actually inserted.
func (ir *ingredientRepo) CreateBatch(ctx context.Context, tx *gorm.DB, ingredients []*types.Ingredient) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	if len(ingredients) == 0 {
		return 0, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "measurement_unit"}},
			DoNothing: true,
		}).
		Create(&ingredients)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ir *ingredientRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ingredientIDs []uuid.UUID) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var results []*types.Ingredient
	if len(ingredientIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ingredientIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) ListByNamePrefix(ctx context.Context, tx *gorm.DB, namePrefix string) ([]*types.Ingredient, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	q := transaction.WithContext(ctx).Order("name ASC")
	if namePrefix != "" {
		// LOWER+LIKE instead of ILIKE so the sqlite dev driver works too.
		q = q.Where("LOWER(name) LIKE LOWER(?)", namePrefix+"%")
	}

	var results []*types.Ingredient
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *ingredientRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Ingredient{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
