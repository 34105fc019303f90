package recipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type TagRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tags []*types.Tag) ([]*types.Tag, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*types.Tag, error)
	GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Tag, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error)
	UpsertBySlug(ctx context.Context, tx *gorm.DB, tags []*types.Tag) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	repoLog := baseLog.With("repo", "TagRepo")
	return &tagRepo{db: db, log: repoLog}
}

func (tr *tagRepo) Create(ctx context.Context, tx *gorm.DB, tags []*types.Tag) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(tags) == 0 {
		return []*types.Tag{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (tr *tagRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tagIDs []uuid.UUID) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if len(tagIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", tagIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) GetBySlugs(ctx context.Context, tx *gorm.DB, slugs []string) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if len(slugs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("slug IN ?", slugs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Tag, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tag
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *tagRepo) UpsertBySlug(ctx context.Context, tx *gorm.DB, tags []*types.Tag) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tags) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(&tags).Error
}
