package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/foodgram/foodgram-backend/internal/http/handlers"
	httpMW "github.com/foodgram/foodgram-backend/internal/http/middleware"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	IngredientHandler   *httpH.IngredientHandler
	TagHandler          *httpH.TagHandler
	RecipeHandler       *httpH.RecipeHandler
	ShoppingListHandler *httpH.ShoppingListHandler
	SubscriptionHandler *httpH.SubscriptionHandler
	EventHandler        *httpH.EventHandler

	// TracingServiceName enables otelgin spans when non-empty.
	TracingServiceName string
	// LocalMediaDir serves uploaded media from disk when non-empty
	// (local storage mode only).
	LocalMediaDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingServiceName != "" {
		r.Use(otelgin.Middleware(cfg.TracingServiceName))
	}
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.LocalMediaDir != "" {
		r.Static("/media", cfg.LocalMediaDir)
	}
	if cfg.RecipeHandler != nil {
		r.GET("/s/:code", cfg.RecipeHandler.ResolveShortLink)
	}

	api := r.Group("/api")
	{
		// Public surface still resolves the caller when a token is
		// present so per-user flags come back right.
		public := api.Group("/")
		if cfg.AuthMiddleware != nil {
			public.Use(cfg.AuthMiddleware.OptionalAuth())
		}

		if cfg.AuthHandler != nil {
			public.POST("/auth/token/login", cfg.AuthHandler.Login)
		}
		if cfg.UserHandler != nil {
			public.POST("/users", cfg.UserHandler.Register)
			public.GET("/users", cfg.UserHandler.List)
			public.GET("/users/:id", cfg.UserHandler.Get)
		}
		if cfg.IngredientHandler != nil {
			public.GET("/ingredients", cfg.IngredientHandler.List)
			public.GET("/ingredients/:id", cfg.IngredientHandler.Get)
		}
		if cfg.TagHandler != nil {
			public.GET("/tags", cfg.TagHandler.List)
			public.GET("/tags/:id", cfg.TagHandler.Get)
		}
		if cfg.RecipeHandler != nil {
			public.GET("/recipes", cfg.RecipeHandler.List)
			public.GET("/recipes/:id", cfg.RecipeHandler.Get)
			public.GET("/recipes/:id/get-link", cfg.RecipeHandler.GetLink)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/auth/token/logout", cfg.AuthHandler.Logout)
		}
		if cfg.UserHandler != nil {
			protected.GET("/users/me", cfg.UserHandler.Me)
			protected.POST("/users/set_password", cfg.UserHandler.SetPassword)
			protected.PUT("/users/me/avatar", cfg.UserHandler.PutAvatar)
			protected.DELETE("/users/me/avatar", cfg.UserHandler.DeleteAvatar)
		}
		if cfg.SubscriptionHandler != nil {
			protected.GET("/users/subscriptions", cfg.SubscriptionHandler.List)
			protected.POST("/users/:id/subscribe", cfg.SubscriptionHandler.Subscribe)
			protected.DELETE("/users/:id/subscribe", cfg.SubscriptionHandler.Unsubscribe)
		}
		if cfg.RecipeHandler != nil {
			protected.POST("/recipes", cfg.RecipeHandler.Create)
			protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
			protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)
			protected.POST("/recipes/:id/favorite", cfg.RecipeHandler.AddFavorite)
			protected.DELETE("/recipes/:id/favorite", cfg.RecipeHandler.RemoveFavorite)
		}
		if cfg.ShoppingListHandler != nil {
			protected.GET("/recipes/download_shopping_cart", cfg.ShoppingListHandler.Download)
			protected.POST("/recipes/:id/shopping_cart", cfg.ShoppingListHandler.Add)
			protected.DELETE("/recipes/:id/shopping_cart", cfg.ShoppingListHandler.Remove)
		}
		if cfg.EventHandler != nil {
			protected.POST("/events", cfg.EventHandler.Ingest)
		}
	}

	return r
}
