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

type IngredientService interface {
	ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error)
}

type ingredientService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo recipesrepo.IngredientRepo
}

func NewIngredientService(db *gorm.DB, log *logger.Logger, ingredientRepo recipesrepo.IngredientRepo) IngredientService {
	serviceLog := log.With("service", "IngredientService")
	return &ingredientService{db: db, log: serviceLog, ingredientRepo: ingredientRepo}
}

func (is *ingredientService) ListIngredients(ctx context.Context, namePrefix string) ([]*types.Ingredient, error) {
	ingredients, err := is.ingredientRepo.ListByNamePrefix(ctx, nil, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (is *ingredientService) GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, error) {
	ingredients, err := is.ingredientRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	if len(ingredients) == 0 {
		return nil, ErrNotFound
	}
	return ingredients[0], nil
}
