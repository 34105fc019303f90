package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	cartrepo "github.com/foodgram/foodgram-backend/internal/data/repos/cart"
	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	userrepo "github.com/foodgram/foodgram-backend/internal/data/repos/user"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

// maxAggregatedAmount caps a merged total; a sum past this point means
// corrupt amounts, not a real shopping list.
const maxAggregatedAmount int64 = 1_000_000_000

type ShoppingListService interface {
	AddToCart(ctx context.Context, recipeID uuid.UUID) (*RecipeShortView, error)
	RemoveFromCart(ctx context.Context, recipeID uuid.UUID) error
	Aggregate(ctx context.Context, userID uuid.UUID) ([]types.AggregatedLine, error)
	DownloadForCaller(ctx context.Context) (string, error)
}

type shoppingListService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	cartRepo      cartrepo.CartRepo
	riRepo        recipesrepo.RecipeIngredientRepo
	recipeService RecipeService
	eventService  EventService
}

func NewShoppingListService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	cartRepo cartrepo.CartRepo,
	riRepo recipesrepo.RecipeIngredientRepo,
	recipeService RecipeService,
	eventService EventService,
) ShoppingListService {
	serviceLog := log.With("service", "ShoppingListService")
	return &shoppingListService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		cartRepo:      cartRepo,
		riRepo:        riRepo,
		recipeService: recipeService,
		eventService:  eventService,
	}
}

func (sls *shoppingListService) AddToCart(ctx context.Context, recipeID uuid.UUID) (*RecipeShortView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	recipe, err := sls.recipeService.GetModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	if err := sls.cartRepo.Add(ctx, nil, &types.ShoppingCartEntry{UserID: rd.UserID, RecipeID: recipeID}); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: recipe already in shopping cart", ErrConflict)
		}
		return nil, fmt.Errorf("add to cart: %w", err)
	}

	sls.eventService.Record(ctx, nil, rd.UserID, types.EventCartAdded, map[string]any{
		"recipe_id": recipeID.String(),
	})
	return sls.recipeService.BuildShortViews([]*types.Recipe{recipe})[0], nil
}

func (sls *shoppingListService) RemoveFromCart(ctx context.Context, recipeID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}

	if _, err := sls.recipeService.GetModel(ctx, recipeID); err != nil {
		return err
	}

	n, err := sls.cartRepo.Remove(ctx, nil, rd.UserID, recipeID)
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: recipe is not in shopping cart", ErrInvalidInput)
	}

	sls.eventService.Record(ctx, nil, rd.UserID, types.EventCartRemoved, map[string]any{
		"recipe_id": recipeID.String(),
	})
	return nil
}

// Aggregate builds the user's consolidated shopping list. The cart and
// recipe-ingredient reads share one transaction so the list reflects a
// single point in time.
func (sls *shoppingListService) Aggregate(ctx context.Context, userID uuid.UUID) ([]types.AggregatedLine, error) {
	var rows []*types.RecipeIngredient

	err := sls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, err := sls.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if err != nil {
			return fmt.Errorf("lookup user: %w", err)
		}
		if len(users) == 0 {
			return ErrNotFound
		}

		recipeIDs, err := sls.cartRepo.ListRecipeIDsByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("list cart recipes: %w", err)
		}
		if len(recipeIDs) == 0 {
			return nil
		}

		rows, err = sls.riRepo.ListByRecipeIDs(ctx, tx, recipeIDs)
		if err != nil {
			return fmt.Errorf("load recipe ingredients: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return aggregateCartLines(rows)
}

// aggregateCartLines merges rows by (ingredient name, measurement unit),
// sums the amounts, and orders the result by name then unit. It is a pure
// function over already-fetched rows.
func aggregateCartLines(rows []*types.RecipeIngredient) ([]types.AggregatedLine, error) {
	type key struct {
		name string
		unit string
	}

	totals := make(map[key]int64)
	for _, row := range rows {
		if row.Ingredient == nil {
			return nil, fmt.Errorf("%w: recipe %s references missing ingredient %s",
				ErrDataIntegrity, row.RecipeID, row.IngredientID)
		}
		if row.Amount <= 0 {
			return nil, fmt.Errorf("%w: non-positive amount %d for ingredient %q",
				ErrDataIntegrity, row.Amount, row.Ingredient.Name)
		}
		// Bounding each amount first keeps the running total well below
		// the int64 range, so the sum can never wrap.
		if row.Amount > maxAggregatedAmount {
			return nil, fmt.Errorf("%w: amount %d for ingredient %q exceeds %d",
				ErrDataIntegrity, row.Amount, row.Ingredient.Name, maxAggregatedAmount)
		}
		k := key{name: row.Ingredient.Name, unit: row.Ingredient.MeasurementUnit}
		totals[k] += row.Amount
		if totals[k] > maxAggregatedAmount {
			return nil, fmt.Errorf("%w: total for %q (%s) exceeds %d",
				ErrDataIntegrity, k.name, k.unit, maxAggregatedAmount)
		}
	}

	lines := make([]types.AggregatedLine, 0, len(totals))
	for k, total := range totals {
		lines = append(lines, types.AggregatedLine{
			Name:            k.name,
			MeasurementUnit: k.unit,
			TotalAmount:     total,
		})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].MeasurementUnit < lines[j].MeasurementUnit
	})
	return lines, nil
}

// RenderShoppingListText formats the aggregated lines as the plain-text
// attachment body.
func RenderShoppingListText(lines []types.AggregatedLine) string {
	var sb strings.Builder
	sb.WriteString("Shopping list:\n")
	for _, line := range lines {
		fmt.Fprintf(&sb, "- %s (%s): %d\n", line.Name, line.MeasurementUnit, line.TotalAmount)
	}
	return sb.String()
}

// DownloadForCaller aggregates the caller's cart and renders the TXT body.
// An empty cart is an error here: the endpoint has nothing to attach.
func (sls *shoppingListService) DownloadForCaller(ctx context.Context) (string, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return "", ErrUnauthorized
	}

	lines, err := sls.Aggregate(ctx, rd.UserID)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: shopping cart is empty", ErrInvalidInput)
	}

	sls.eventService.Record(ctx, nil, rd.UserID, types.EventListDownloaded, map[string]any{
		"line_count": len(lines),
	})
	return RenderShoppingListText(lines), nil
}
