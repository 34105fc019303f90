package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/clients/redis"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/platform/storage"
	"github.com/foodgram/foodgram-backend/internal/services"
)

type Services struct {
	Avatar       services.AvatarService
	Auth         services.AuthService
	User         services.UserService
	Ingredient   services.IngredientService
	Tag          services.TagService
	Recipe       services.RecipeService
	Event        services.EventService
	Favorite     services.FavoriteService
	ShoppingList services.ShoppingListService
	Subscription services.SubscriptionService
	ShortLink    services.ShortLinkService

	Media       storage.MediaStore
	MediaConfig storage.Config
	LinkCache   redis.LinkCache
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos) (Services, error) {
	storageCfg, err := storage.ResolveConfigFromEnv()
	if err != nil {
		return Services{}, fmt.Errorf("resolve storage config: %w", err)
	}
	media, err := storage.New(log, storageCfg)
	if err != nil {
		return Services{}, fmt.Errorf("init media store: %w", err)
	}

	// The short-link cache is optional; the service falls back to the
	// database when it is absent.
	var linkCache redis.LinkCache
	if cfg.RedisAddr != "" {
		linkCache, err = redis.NewLinkCache(log)
		if err != nil {
			log.Warn("Short-link cache unavailable, continuing without it", "error", err)
			linkCache = nil
		}
	}

	avatarService, err := services.NewAvatarService(db, log, repos.User, media)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}
	authService := services.NewAuthService(db, log, repos.User, repos.UserToken, avatarService)
	userService := services.NewUserService(db, log, repos.User, repos.Subscription)
	ingredientService := services.NewIngredientService(db, log, repos.Ingredient)
	tagService := services.NewTagService(db, log, repos.Tag)
	recipeService := services.NewRecipeService(
		db, log,
		repos.Recipe, repos.RecipeIngredient, repos.RecipeTag,
		repos.Ingredient, repos.Tag,
		repos.Favorite, repos.Cart,
		userService, media,
	)
	eventService := services.NewEventService(db, log, repos.UserEvent)
	favoriteService := services.NewFavoriteService(db, log, repos.Favorite, recipeService, eventService)
	shoppingListService := services.NewShoppingListService(
		db, log,
		repos.User, repos.Cart, repos.RecipeIngredient,
		recipeService, eventService,
	)
	subscriptionService := services.NewSubscriptionService(
		db, log,
		repos.Subscription, repos.Recipe,
		userService, recipeService, eventService,
	)
	shortLinkService := services.NewShortLinkService(db, log, repos.ShortLink, recipeService, linkCache, cfg.BaseURL)

	return Services{
		Avatar:       avatarService,
		Auth:         authService,
		User:         userService,
		Ingredient:   ingredientService,
		Tag:          tagService,
		Recipe:       recipeService,
		Event:        eventService,
		Favorite:     favoriteService,
		ShoppingList: shoppingListService,
		Subscription: subscriptionService,
		ShortLink:    shortLinkService,

		Media:       media,
		MediaConfig: storageCfg,
		LinkCache:   linkCache,
	}, nil
}
