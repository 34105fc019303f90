package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	favrepo "github.com/foodgram/foodgram-backend/internal/data/repos/favorites"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, recipeID uuid.UUID) (*RecipeShortView, error)
	RemoveFavorite(ctx context.Context, recipeID uuid.UUID) error
}

type favoriteService struct {
	db            *gorm.DB
	log           *logger.Logger
	favRepo       favrepo.FavoriteRepo
	recipeService RecipeService
	eventService  EventService
}

func NewFavoriteService(
	db *gorm.DB,
	log *logger.Logger,
	favRepo favrepo.FavoriteRepo,
	recipeService RecipeService,
	eventService EventService,
) FavoriteService {
	serviceLog := log.With("service", "FavoriteService")
	return &favoriteService{
		db:            db,
		log:           serviceLog,
		favRepo:       favRepo,
		recipeService: recipeService,
		eventService:  eventService,
	}
}

func (fs *favoriteService) AddFavorite(ctx context.Context, recipeID uuid.UUID) (*RecipeShortView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	recipe, err := fs.recipeService.GetModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := fs.favRepo.Add(ctx, nil, &types.Favorite{UserID: rd.UserID, RecipeID: recipeID}); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: recipe already in favorites", ErrConflict)
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	fs.eventService.Record(ctx, nil, rd.UserID, types.EventFavoriteAdded, map[string]any{
		"recipe_id": recipeID.String(),
	})
	return fs.recipeService.BuildShortViews([]*types.Recipe{recipe})[0], nil
}

func (fs *favoriteService) RemoveFavorite(ctx context.Context, recipeID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}

	if _, err := fs.recipeService.GetModel(ctx, recipeID); err != nil {
		return err
	}

	n, err := fs.favRepo.Remove(ctx, nil, rd.UserID, recipeID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: recipe is not in favorites", ErrInvalidInput)
	}

	fs.eventService.Record(ctx, nil, rd.UserID, types.EventFavoriteRemoved, map[string]any{
		"recipe_id": recipeID.String(),
	})
	return nil
}
