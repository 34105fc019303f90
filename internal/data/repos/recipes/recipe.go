package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

// ListFilter narrows the recipe listing; zero values mean "no filter".
type ListFilter struct {
	AuthorID    uuid.UUID
	TagSlugs    []string
	FavoritedBy uuid.UUID
	InCartOf    uuid.UUID
	NotInCartOf uuid.UUID
	Offset      int
	Limit       int
}

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.Recipe, error)
	Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Recipe, int64, error)
	CountByAuthors(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	ListByAuthors(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID, perAuthorLimit int) ([]*types.Recipe, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	repoLog := baseLog.With("repo", "RecipeRepo")
	return &recipeRepo{db: db, log: repoLog}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipes []*types.Recipe) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(recipes) == 0 {
		return []*types.Recipe{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (rr *recipeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, recipeIDs []uuid.UUID) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recipe
	if len(recipeIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", recipeIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) Update(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]any{
			"name":            recipe.Name,
			"text":            recipe.Text,
			"cooking_time":    recipe.CookingTime,
			"image_media_key": recipe.ImageMediaKey,
			"image_url":       recipe.ImageURL,
		}).Error
}

func (rr *recipeRepo) Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", recipeID).
		Delete(&types.Recipe{}).Error
}

func (rr *recipeRepo) List(ctx context.Context, tx *gorm.DB, filter ListFilter) ([]*types.Recipe, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	q := transaction.WithContext(ctx).Model(&types.Recipe{})

	if filter.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Where(`EXISTS (
			SELECT 1 FROM recipe_tag rt
			JOIN tag t ON t.id = rt.tag_id
			WHERE rt.recipe_id = recipe.id AND t.slug IN ?)`, filter.TagSlugs)
	}
	if filter.FavoritedBy != uuid.Nil {
		q = q.Where(`EXISTS (
			SELECT 1 FROM favorite f
			WHERE f.recipe_id = recipe.id AND f.user_id = ?)`, filter.FavoritedBy)
	}
	if filter.InCartOf != uuid.Nil {
		q = q.Where(`EXISTS (
			SELECT 1 FROM shopping_cart_entry sc
			WHERE sc.recipe_id = recipe.id AND sc.user_id = ?)`, filter.InCartOf)
	}
	if filter.NotInCartOf != uuid.Nil {
		q = q.Where(`NOT EXISTS (
			SELECT 1 FROM shopping_cart_entry sc
			WHERE sc.recipe_id = recipe.id AND sc.user_id = ?)`, filter.NotInCartOf)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Preload("Author").Order("created_at DESC")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var results []*types.Recipe
	if err := q.Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (rr *recipeRepo) CountByAuthors(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	counts := map[uuid.UUID]int64{}
	if len(authorIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AuthorID uuid.UUID
		Total    int64
	}
	if err := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.AuthorID] = row.Total
	}
	return counts, nil
}

func (rr *recipeRepo) ListByAuthors(ctx context.Context, tx *gorm.DB, authorIDs []uuid.UUID, perAuthorLimit int) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Recipe
	if len(authorIDs) == 0 {
		return results, nil
	}

	// Fetched unbounded and truncated per author in the service; per-author
	// cart/subscription recipe sets are small.
	if err := transaction.WithContext(ctx).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	if perAuthorLimit > 0 {
		seen := map[uuid.UUID]int{}
		trimmed := results[:0]
		for _, r := range results {
			if seen[r.AuthorID] >= perAuthorLimit {
				continue
			}
			seen[r.AuthorID]++
			trimmed = append(trimmed, r)
		}
		results = trimmed
	}
	return results, nil
}
