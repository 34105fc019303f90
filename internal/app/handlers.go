package app

import (
	httpH "github.com/foodgram/foodgram-backend/internal/http/handlers"
	httpMW "github.com/foodgram/foodgram-backend/internal/http/middleware"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Ingredient   *httpH.IngredientHandler
	Tag          *httpH.TagHandler
	Recipe       *httpH.RecipeHandler
	ShoppingList *httpH.ShoppingListHandler
	Subscription *httpH.SubscriptionHandler
	Event        *httpH.EventHandler
}

func wireHandlers(log *logger.Logger, svcs Services) Handlers {
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Auth:         httpH.NewAuthHandler(log, svcs.Auth),
		User:         httpH.NewUserHandler(log, svcs.Auth, svcs.User, svcs.Avatar),
		Ingredient:   httpH.NewIngredientHandler(log, svcs.Ingredient),
		Tag:          httpH.NewTagHandler(log, svcs.Tag),
		Recipe:       httpH.NewRecipeHandler(log, svcs.Recipe, svcs.Favorite, svcs.ShortLink),
		ShoppingList: httpH.NewShoppingListHandler(log, svcs.ShoppingList),
		Subscription: httpH.NewSubscriptionHandler(log, svcs.Subscription),
		Event:        httpH.NewEventHandler(log, svcs.Event),
	}
}

func wireMiddleware(log *logger.Logger, svcs Services) *httpMW.AuthMiddleware {
	return httpMW.NewAuthMiddleware(log, svcs.Auth)
}
