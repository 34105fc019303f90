package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/clients/redis"
	"github.com/foodgram/foodgram-backend/internal/data/repos"
	shortlinkrepo "github.com/foodgram/foodgram-backend/internal/data/repos/shortlink"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

const (
	shortCodeLength   = 6
	shortCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

type ShortLinkService interface {
	GetOrCreateLink(ctx context.Context, recipeID uuid.UUID) (string, error)
	Resolve(ctx context.Context, code string) (uuid.UUID, error)
}

type shortLinkService struct {
	db            *gorm.DB
	log           *logger.Logger
	linkRepo      shortlinkrepo.ShortLinkRepo
	recipeService RecipeService
	cache         redis.LinkCache
	baseURL       string
}

// NewShortLinkService accepts a nil cache; lookups then always hit the
// database.
func NewShortLinkService(
	db *gorm.DB,
	log *logger.Logger,
	linkRepo shortlinkrepo.ShortLinkRepo,
	recipeService RecipeService,
	cache redis.LinkCache,
	baseURL string,
) ShortLinkService {
	serviceLog := log.With("service", "ShortLinkService")
	return &shortLinkService{
		db:            db,
		log:           serviceLog,
		linkRepo:      linkRepo,
		recipeService: recipeService,
		cache:         cache,
		baseURL:       baseURL,
	}
}

func generateShortCode() (string, error) {
	raw := make([]byte, shortCodeLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate short code: %w", err)
	}
	for i, b := range raw {
		raw[i] = shortCodeAlphabet[int(b)%len(shortCodeAlphabet)]
	}
	return string(raw), nil
}

func (sls *shortLinkService) GetOrCreateLink(ctx context.Context, recipeID uuid.UUID) (string, error) {
	if _, err := sls.recipeService.GetModel(ctx, recipeID); err != nil {
		return "", err
	}

	existing, err := sls.linkRepo.GetByRecipeID(ctx, nil, recipeID)
	if err == nil {
		return sls.shortURL(existing.Code), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup short link: %w", err)
	}

	// Retry on the rare code collision; a concurrent create for the same
	// recipe wins and we reuse its code.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateShortCode()
		if err != nil {
			return "", err
		}
		createErr := sls.linkRepo.Create(ctx, nil, &types.ShortLink{Code: code, RecipeID: recipeID})
		if createErr == nil {
			return sls.shortURL(code), nil
		}
		if !repos.IsUniqueViolation(createErr) {
			return "", fmt.Errorf("create short link: %w", createErr)
		}
		if link, lookupErr := sls.linkRepo.GetByRecipeID(ctx, nil, recipeID); lookupErr == nil {
			return sls.shortURL(link.Code), nil
		}
	}
	return "", fmt.Errorf("could not allocate short code for recipe %s", recipeID)
}

func (sls *shortLinkService) Resolve(ctx context.Context, code string) (uuid.UUID, error) {
	if sls.cache != nil {
		if id, ok := sls.cache.GetRecipeID(ctx, code); ok {
			return id, nil
		}
	}

	link, err := sls.linkRepo.GetByCode(ctx, nil, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("resolve short link: %w", err)
	}

	if sls.cache != nil {
		sls.cache.SetRecipeID(ctx, code, link.RecipeID)
	}
	return link.RecipeID, nil
}

func (sls *shortLinkService) shortURL(code string) string {
	return fmt.Sprintf("%s/s/%s", sls.baseURL, code)
}
