package app

import (
	"gorm.io/gorm"

	authrepo "github.com/foodgram/foodgram-backend/internal/data/repos/auth"
	cartrepo "github.com/foodgram/foodgram-backend/internal/data/repos/cart"
	eventsrepo "github.com/foodgram/foodgram-backend/internal/data/repos/events"
	favrepo "github.com/foodgram/foodgram-backend/internal/data/repos/favorites"
	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	shortlinkrepo "github.com/foodgram/foodgram-backend/internal/data/repos/shortlink"
	subsrepo "github.com/foodgram/foodgram-backend/internal/data/repos/subscriptions"
	userrepo "github.com/foodgram/foodgram-backend/internal/data/repos/user"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type Repos struct {
	User             userrepo.UserRepo
	UserToken        authrepo.UserTokenRepo
	Ingredient       recipesrepo.IngredientRepo
	Tag              recipesrepo.TagRepo
	Recipe           recipesrepo.RecipeRepo
	RecipeIngredient recipesrepo.RecipeIngredientRepo
	RecipeTag        recipesrepo.RecipeTagRepo
	Favorite         favrepo.FavoriteRepo
	Cart             cartrepo.CartRepo
	Subscription     subsrepo.SubscriptionRepo
	ShortLink        shortlinkrepo.ShortLinkRepo
	UserEvent        eventsrepo.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:             userrepo.NewUserRepo(db, log),
		UserToken:        authrepo.NewUserTokenRepo(db, log),
		Ingredient:       recipesrepo.NewIngredientRepo(db, log),
		Tag:              recipesrepo.NewTagRepo(db, log),
		Recipe:           recipesrepo.NewRecipeRepo(db, log),
		RecipeIngredient: recipesrepo.NewRecipeIngredientRepo(db, log),
		RecipeTag:        recipesrepo.NewRecipeTagRepo(db, log),
		Favorite:         favrepo.NewFavoriteRepo(db, log),
		Cart:             cartrepo.NewCartRepo(db, log),
		Subscription:     subsrepo.NewSubscriptionRepo(db, log),
		ShortLink:        shortlinkrepo.NewShortLinkRepo(db, log),
		UserEvent:        eventsrepo.NewUserEventRepo(db, log),
	}
}
