package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type TagService interface {
	ListTags(ctx context.Context) ([]*types.Tag, error)
	GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	log     *logger.Logger
	tagRepo recipesrepo.TagRepo
}

func NewTagService(db *gorm.DB, log *logger.Logger, tagRepo recipesrepo.TagRepo) TagService {
	serviceLog := log.With("service", "TagService")
	return &tagService{db: db, log: serviceLog, tagRepo: tagRepo}
}

func (ts *tagService) ListTags(ctx context.Context) ([]*types.Tag, error) {
	tags, err := ts.tagRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (ts *tagService) GetTag(ctx context.Context, id uuid.UUID) (*types.Tag, error) {
	tags, err := ts.tagRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	if len(tags) == 0 {
		return nil, ErrNotFound
	}
	return tags[0], nil
}
