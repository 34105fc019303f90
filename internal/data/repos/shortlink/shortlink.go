package shortlink

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type ShortLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.ShortLink) error
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.ShortLink, error)
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.ShortLink, error)
}

type shortLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShortLinkRepo(db *gorm.DB, baseLog *logger.Logger) ShortLinkRepo {
	repoLog := baseLog.With("repo", "ShortLinkRepo")
	return &shortLinkRepo{db: db, log: repoLog}
}

func (slr *shortLinkRepo) Create(ctx context.Context, tx *gorm.DB, link *types.ShortLink) error {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}
	return transaction.WithContext(ctx).Create(link).Error
}

func (slr *shortLinkRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.ShortLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	var link types.ShortLink
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (slr *shortLinkRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.ShortLink, error) {
	transaction := tx
	if transaction == nil {
		transaction = slr.db
	}

	var link types.ShortLink
	if err := transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}
