package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/db"
	appHTTP "github.com/foodgram/foodgram-backend/internal/http"
	"github.com/foodgram/foodgram-backend/internal/observability"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/platform/storage"
	"github.com/foodgram/foodgram-backend/internal/utils"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Server   *appHTTP.Server

	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	pg, err := db.New(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet)
	if err != nil {
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, serviceset)
	authMW := wireMiddleware(log, serviceset)

	routerCfg := appHTTP.RouterConfig{
		Log:            log,
		AuthMiddleware: authMW,

		HealthHandler:       handlerset.Health,
		AuthHandler:         handlerset.Auth,
		UserHandler:         handlerset.User,
		IngredientHandler:   handlerset.Ingredient,
		TagHandler:          handlerset.Tag,
		RecipeHandler:       handlerset.Recipe,
		ShoppingListHandler: handlerset.ShoppingList,
		SubscriptionHandler: handlerset.Subscription,
		EventHandler:        handlerset.Event,
	}
	if serviceset.MediaConfig.Mode == storage.ModeLocal {
		routerCfg.LocalMediaDir = serviceset.MediaConfig.LocalDir
	}

	var otelShutdown func(context.Context) error
	if observability.Enabled() {
		serviceName := utils.GetEnv("OTEL_SERVICE_NAME", "foodgram-backend", log)
		routerCfg.TracingServiceName = serviceName
		otelShutdown = observability.InitOTel(context.Background(), log, observability.OtelConfig{
			ServiceName: serviceName,
			Environment: cfg.Environment,
			Version:     cfg.Version,
		})
	}

	server := appHTTP.NewServer(routerCfg)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.ListenAddr)
	return a.Server.Run(a.Cfg.ListenAddr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("Trace exporter shutdown failed", "error", err)
		}
	}
	if a.Services.LinkCache != nil {
		if err := a.Services.LinkCache.Close(); err != nil {
			a.Log.Warn("Redis close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
