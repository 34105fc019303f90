package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	cartrepo "github.com/foodgram/foodgram-backend/internal/data/repos/cart"
	favrepo "github.com/foodgram/foodgram-backend/internal/data/repos/favorites"
	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/platform/storage"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

const maxCookingTimeMinutes = 32000

// RecipeInput is the write shape shared by create and update.
type RecipeInput struct {
	Ingredients []RecipeIngredientInput `json:"ingredients"`
	Tags        []uuid.UUID             `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time"`
}

type RecipeIngredientInput struct {
	ID     uuid.UUID `json:"id"`
	Amount int64     `json:"amount"`
}

type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int64     `json:"amount"`
}

type RecipeView struct {
	ID               uuid.UUID               `json:"id"`
	Tags             []*types.Tag            `json:"tags"`
	Author           *UserView               `json:"author"`
	Ingredients      []*RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                    `json:"is_favorited"`
	IsInShoppingCart bool                    `json:"is_in_shopping_cart"`
	Name             string                  `json:"name"`
	Image            string                  `json:"image"`
	Text             string                  `json:"text"`
	CookingTime      int                     `json:"cooking_time"`
}

// RecipeShortView is the compact shape returned by favorite and cart
// endpoints and embedded in subscription listings.
type RecipeShortView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type RecipeListFilter struct {
	AuthorID      uuid.UUID
	TagSlugs      []string
	OnlyFavorited bool
	InCart        *bool
	Offset        int
	Limit         int
}

type RecipeService interface {
	CreateRecipe(ctx context.Context, input *RecipeInput) (*RecipeView, error)
	UpdateRecipe(ctx context.Context, recipeID uuid.UUID, input *RecipeInput) (*RecipeView, error)
	DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeView, error)
	ListRecipes(ctx context.Context, filter RecipeListFilter) ([]*RecipeView, int64, error)
	GetModel(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error)
	BuildViews(ctx context.Context, recipes []*types.Recipe) ([]*RecipeView, error)
	BuildShortViews(recipes []*types.Recipe) []*RecipeShortView
}

type recipeService struct {
	db          *gorm.DB
	log         *logger.Logger
	recipeRepo  recipesrepo.RecipeRepo
	riRepo      recipesrepo.RecipeIngredientRepo
	rtRepo      recipesrepo.RecipeTagRepo
	ingRepo     recipesrepo.IngredientRepo
	tagRepo     recipesrepo.TagRepo
	favRepo     favrepo.FavoriteRepo
	cartRepo    cartrepo.CartRepo
	userService UserService
	media       storage.MediaStore
}

func NewRecipeService(
	db *gorm.DB,
	log *logger.Logger,
	recipeRepo recipesrepo.RecipeRepo,
	riRepo recipesrepo.RecipeIngredientRepo,
	rtRepo recipesrepo.RecipeTagRepo,
	ingRepo recipesrepo.IngredientRepo,
	tagRepo recipesrepo.TagRepo,
	favRepo favrepo.FavoriteRepo,
	cartRepo cartrepo.CartRepo,
	userService UserService,
	media storage.MediaStore,
) RecipeService {
	serviceLog := log.With("service", "RecipeService")
	return &recipeService{
		db:          db,
		log:         serviceLog,
		recipeRepo:  recipeRepo,
		riRepo:      riRepo,
		rtRepo:      rtRepo,
		ingRepo:     ingRepo,
		tagRepo:     tagRepo,
		favRepo:     favRepo,
		cartRepo:    cartRepo,
		userService: userService,
		media:       media,
	}
}

func (rs *recipeService) validateInput(ctx context.Context, input *RecipeInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Text) == "" {
		return fmt.Errorf("%w: name and text are required", ErrInvalidInput)
	}
	if input.CookingTime < 1 || input.CookingTime > maxCookingTimeMinutes {
		return fmt.Errorf("%w: cooking_time must be between 1 and %d", ErrInvalidInput, maxCookingTimeMinutes)
	}
	if len(input.Ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient is required", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]bool, len(input.Ingredients))
	ids := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if item.Amount < 1 {
			return fmt.Errorf("%w: ingredient amount must be positive", ErrInvalidInput)
		}
		if item.Amount > maxAggregatedAmount {
			return fmt.Errorf("%w: ingredient amount must not exceed %d", ErrInvalidInput, maxAggregatedAmount)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate ingredient %s", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}
	found, err := rs.ingRepo.GetByIDs(ctx, nil, ids)
	if err != nil {
		return fmt.Errorf("check ingredients: %w", err)
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: unknown ingredient", ErrInvalidInput)
	}

	if len(input.Tags) > 0 {
		seenTags := make(map[uuid.UUID]bool, len(input.Tags))
		for _, id := range input.Tags {
			if seenTags[id] {
				return fmt.Errorf("%w: duplicate tag %s", ErrInvalidInput, id)
			}
			seenTags[id] = true
		}
		foundTags, err := rs.tagRepo.GetByIDs(ctx, nil, input.Tags)
		if err != nil {
			return fmt.Errorf("check tags: %w", err)
		}
		if len(foundTags) != len(input.Tags) {
			return fmt.Errorf("%w: unknown tag", ErrInvalidInput)
		}
	}
	return nil
}

// DecodeDataURL accepts the "data:image/png;base64,..." payload the
// frontend sends and returns raw bytes plus the content type.
func DecodeDataURL(encoded string) ([]byte, string, error) {
	contentType := "image/png"
	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ",", 2)
		if len(parts) != 2 {
			return nil, "", fmt.Errorf("%w: malformed data url", ErrInvalidInput)
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if idx := strings.Index(meta, ";"); idx > 0 {
			contentType = meta[:idx]
		}
		encoded = parts[1]
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid base64 image", ErrInvalidInput)
	}
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	return raw, contentType, nil
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}

func (rs *recipeService) storeImage(ctx context.Context, recipeID uuid.UUID, encoded string) (key, url string, err error) {
	raw, contentType, err := DecodeDataURL(encoded)
	if err != nil {
		return "", "", err
	}
	key = fmt.Sprintf("recipes/%s/%d.%s", recipeID.String(), time.Now().UnixNano(), imageExtension(contentType))
	if err := rs.media.Upload(ctx, key, contentType, bytes.NewReader(raw)); err != nil {
		return "", "", fmt.Errorf("upload recipe image: %w", err)
	}
	return key, rs.media.PublicURL(key), nil
}

func (rs *recipeService) CreateRecipe(ctx context.Context, input *RecipeInput) (*RecipeView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if err := rs.validateInput(ctx, input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Image) == "" {
		return nil, fmt.Errorf("%w: image is required", ErrInvalidInput)
	}

	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    rd.UserID,
		Name:        strings.TrimSpace(input.Name),
		Text:        input.Text,
		CookingTime: input.CookingTime,
	}

	imageKey, imageURL, err := rs.storeImage(ctx, recipe.ID, input.Image)
	if err != nil {
		return nil, err
	}
	recipe.ImageMediaKey = imageKey
	recipe.ImageURL = imageURL

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := rs.recipeRepo.Create(ctx, tx, []*types.Recipe{recipe}); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return rs.writeRelations(ctx, tx, recipe.ID, input)
	})
	if err != nil {
		return nil, err
	}
	return rs.GetRecipe(ctx, recipe.ID)
}

func (rs *recipeService) writeRelations(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, input *RecipeInput) error {
	rows := make([]*types.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		rows = append(rows, &types.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	if err := rs.riRepo.ReplaceForRecipe(ctx, tx, recipeID, rows); err != nil {
		return fmt.Errorf("write recipe ingredients: %w", err)
	}

	tagRows := make([]*types.RecipeTag, 0, len(input.Tags))
	for _, id := range input.Tags {
		tagRows = append(tagRows, &types.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := rs.rtRepo.ReplaceForRecipe(ctx, tx, recipeID, tagRows); err != nil {
		return fmt.Errorf("write recipe tags: %w", err)
	}
	return nil
}

func (rs *recipeService) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, input *RecipeInput) (*RecipeView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	recipe, err := rs.GetModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != rd.UserID {
		return nil, ErrPermission
	}
	if err := rs.validateInput(ctx, input); err != nil {
		return nil, err
	}

	recipe.Name = strings.TrimSpace(input.Name)
	recipe.Text = input.Text
	recipe.CookingTime = input.CookingTime

	oldImageKey := recipe.ImageMediaKey
	if strings.TrimSpace(input.Image) != "" {
		key, url, err := rs.storeImage(ctx, recipe.ID, input.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImageMediaKey = key
		recipe.ImageURL = url
	}

	err = rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := rs.recipeRepo.Update(ctx, tx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		return rs.writeRelations(ctx, tx, recipe.ID, input)
	})
	if err != nil {
		return nil, err
	}

	if oldImageKey != "" && oldImageKey != recipe.ImageMediaKey {
		if err := rs.media.Delete(ctx, oldImageKey); err != nil {
			rs.log.Warn("failed to delete old recipe image", "key", oldImageKey, "error", err)
		}
	}
	return rs.GetRecipe(ctx, recipe.ID)
}

func (rs *recipeService) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}

	recipe, err := rs.GetModel(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != rd.UserID {
		return ErrPermission
	}

	if err := rs.recipeRepo.Delete(ctx, nil, recipeID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if recipe.ImageMediaKey != "" {
		if err := rs.media.Delete(ctx, recipe.ImageMediaKey); err != nil {
			rs.log.Warn("failed to delete recipe image", "key", recipe.ImageMediaKey, "error", err)
		}
	}
	return nil
}

func (rs *recipeService) GetModel(ctx context.Context, recipeID uuid.UUID) (*types.Recipe, error) {
	recipes, err := rs.recipeRepo.GetByIDs(ctx, nil, []uuid.UUID{recipeID})
	if err != nil {
		return nil, fmt.Errorf("lookup recipe: %w", err)
	}
	if len(recipes) == 0 {
		return nil, ErrNotFound
	}
	return recipes[0], nil
}

func (rs *recipeService) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeView, error) {
	recipe, err := rs.GetModel(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	views, err := rs.BuildViews(ctx, []*types.Recipe{recipe})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (rs *recipeService) ListRecipes(ctx context.Context, filter RecipeListFilter) ([]*RecipeView, int64, error) {
	repoFilter := recipesrepo.ListFilter{
		AuthorID: filter.AuthorID,
		TagSlugs: filter.TagSlugs,
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	}

	rd := requestdata.GetRequestData(ctx)
	if filter.OnlyFavorited {
		if rd == nil || rd.UserID == uuid.Nil {
			return []*RecipeView{}, 0, nil
		}
		repoFilter.FavoritedBy = rd.UserID
	}
	if filter.InCart != nil {
		if rd == nil || rd.UserID == uuid.Nil {
			if *filter.InCart {
				return []*RecipeView{}, 0, nil
			}
		} else if *filter.InCart {
			repoFilter.InCartOf = rd.UserID
		} else {
			repoFilter.NotInCartOf = rd.UserID
		}
	}

	recipes, total, err := rs.recipeRepo.List(ctx, nil, repoFilter)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	views, err := rs.BuildViews(ctx, recipes)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// BuildViews assembles full recipe payloads with four batch queries
// regardless of page size.
func (rs *recipeService) BuildViews(ctx context.Context, recipes []*types.Recipe) ([]*RecipeView, error) {
	if len(recipes) == 0 {
		return []*RecipeView{}, nil
	}

	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	authorByID := map[uuid.UUID]*types.User{}
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if r.Author != nil {
			authorByID[r.AuthorID] = r.Author
		}
	}

	authors := make([]*types.User, 0, len(authorByID))
	for _, a := range authorByID {
		authors = append(authors, a)
	}
	authorViews, err := rs.userService.BuildViews(ctx, authors)
	if err != nil {
		return nil, err
	}
	authorViewByID := make(map[uuid.UUID]*UserView, len(authorViews))
	for _, v := range authorViews {
		authorViewByID[v.ID] = v
	}

	riRows, err := rs.riRepo.ListByRecipeIDs(ctx, nil, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	ingredientsByRecipe := map[uuid.UUID][]*RecipeIngredientView{}
	for _, row := range riRows {
		if row.Ingredient == nil {
			return nil, fmt.Errorf("%w: recipe %s references missing ingredient %s",
				ErrDataIntegrity, row.RecipeID, row.IngredientID)
		}
		ingredientsByRecipe[row.RecipeID] = append(ingredientsByRecipe[row.RecipeID], &RecipeIngredientView{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	rtRows, err := rs.rtRepo.ListByRecipeIDs(ctx, nil, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe tags: %w", err)
	}
	tagsByRecipe := map[uuid.UUID][]*types.Tag{}
	for _, row := range rtRows {
		if row.Tag != nil {
			tagsByRecipe[row.RecipeID] = append(tagsByRecipe[row.RecipeID], row.Tag)
		}
	}

	favorited := map[uuid.UUID]bool{}
	inCart := map[uuid.UUID]bool{}
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && rd.UserID != uuid.Nil {
		if favorited, err = rs.favRepo.RecipeIDsFavorited(ctx, nil, rd.UserID, recipeIDs); err != nil {
			return nil, fmt.Errorf("resolve favorites: %w", err)
		}
		if inCart, err = rs.cartRepo.RecipeIDsInCart(ctx, nil, rd.UserID, recipeIDs); err != nil {
			return nil, fmt.Errorf("resolve cart: %w", err)
		}
	}

	views := make([]*RecipeView, 0, len(recipes))
	for _, r := range recipes {
		tags := tagsByRecipe[r.ID]
		if tags == nil {
			tags = []*types.Tag{}
		}
		ingredients := ingredientsByRecipe[r.ID]
		if ingredients == nil {
			ingredients = []*RecipeIngredientView{}
		}
		views = append(views, &RecipeView{
			ID:               r.ID,
			Tags:             tags,
			Author:           authorViewByID[r.AuthorID],
			Ingredients:      ingredients,
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return views, nil
}

func (rs *recipeService) BuildShortViews(recipes []*types.Recipe) []*RecipeShortView {
	views := make([]*RecipeShortView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, &RecipeShortView{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.ImageURL,
			CookingTime: r.CookingTime,
		})
	}
	return views
}
