// Package domain re-exports the persisted model types so callers can import
// a single package under the conventional "types" alias.
package domain

import (
	"github.com/foodgram/foodgram-backend/internal/domain/auth"
	"github.com/foodgram/foodgram-backend/internal/domain/events"
	"github.com/foodgram/foodgram-backend/internal/domain/recipes"
	"github.com/foodgram/foodgram-backend/internal/domain/user"
)

type (
	User      = user.User
	UserToken = auth.UserToken

	Ingredient        = recipes.Ingredient
	Tag               = recipes.Tag
	Recipe            = recipes.Recipe
	RecipeIngredient  = recipes.RecipeIngredient
	RecipeTag         = recipes.RecipeTag
	Favorite          = recipes.Favorite
	ShoppingCartEntry = recipes.ShoppingCartEntry
	Subscription      = recipes.Subscription
	ShortLink         = recipes.ShortLink
	AggregatedLine    = recipes.AggregatedLine

	UserEvent = events.UserEvent
)

const (
	EventCartAdded       = events.EventCartAdded
	EventCartRemoved     = events.EventCartRemoved
	EventFavoriteAdded   = events.EventFavoriteAdded
	EventFavoriteRemoved = events.EventFavoriteRemoved
	EventSubscribed      = events.EventSubscribed
	EventUnsubscribed    = events.EventUnsubscribed
	EventListDownloaded  = events.EventListDownloaded
)
