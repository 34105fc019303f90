package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	recipesrepo "github.com/foodgram/foodgram-backend/internal/data/repos/recipes"
	subsrepo "github.com/foodgram/foodgram-backend/internal/data/repos/subscriptions"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

// SubscriptionView is a followed author plus a preview of their recipes.
type SubscriptionView struct {
	UserView
	Recipes      []*RecipeShortView `json:"recipes"`
	RecipesCount int64              `json:"recipes_count"`
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*SubscriptionView, error)
	Unsubscribe(ctx context.Context, authorID uuid.UUID) error
	ListSubscriptions(ctx context.Context, offset, limit, recipesLimit int) ([]*SubscriptionView, int64, error)
}

type subscriptionService struct {
	db            *gorm.DB
	log           *logger.Logger
	subsRepo      subsrepo.SubscriptionRepo
	recipeRepo    recipesrepo.RecipeRepo
	userService   UserService
	recipeService RecipeService
	eventService  EventService
}

func NewSubscriptionService(
	db *gorm.DB,
	log *logger.Logger,
	subsRepo subsrepo.SubscriptionRepo,
	recipeRepo recipesrepo.RecipeRepo,
	userService UserService,
	recipeService RecipeService,
	eventService EventService,
) SubscriptionService {
	serviceLog := log.With("service", "SubscriptionService")
	return &subscriptionService{
		db:            db,
		log:           serviceLog,
		subsRepo:      subsRepo,
		recipeRepo:    recipeRepo,
		userService:   userService,
		recipeService: recipeService,
		eventService:  eventService,
	}
}

func (ss *subscriptionService) Subscribe(ctx context.Context, authorID uuid.UUID, recipesLimit int) (*SubscriptionView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if authorID == rd.UserID {
		return nil, fmt.Errorf("%w: cannot subscribe to yourself", ErrInvalidInput)
	}

	if _, err := ss.userService.GetModel(ctx, authorID); err != nil {
		return nil, err
	}

	if err := ss.subsRepo.Add(ctx, nil, &types.Subscription{UserID: rd.UserID, AuthorID: authorID}); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: already subscribed", ErrConflict)
		}
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	ss.eventService.Record(ctx, nil, rd.UserID, types.EventSubscribed, map[string]any{
		"author_id": authorID.String(),
	})

	views, err := ss.buildViews(ctx, []uuid.UUID{authorID}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (ss *subscriptionService) Unsubscribe(ctx context.Context, authorID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}

	if _, err := ss.userService.GetModel(ctx, authorID); err != nil {
		return err
	}

	n, err := ss.subsRepo.Remove(ctx, nil, rd.UserID, authorID)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: not subscribed", ErrInvalidInput)
	}

	ss.eventService.Record(ctx, nil, rd.UserID, types.EventUnsubscribed, map[string]any{
		"author_id": authorID.String(),
	})
	return nil
}

func (ss *subscriptionService) ListSubscriptions(ctx context.Context, offset, limit, recipesLimit int) ([]*SubscriptionView, int64, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, 0, ErrUnauthorized
	}

	authorIDs, total, err := ss.subsRepo.ListAuthorIDsByUser(ctx, nil, rd.UserID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	views, err := ss.buildViews(ctx, authorIDs, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (ss *subscriptionService) buildViews(ctx context.Context, authorIDs []uuid.UUID, recipesLimit int) ([]*SubscriptionView, error) {
	if len(authorIDs) == 0 {
		return []*SubscriptionView{}, nil
	}

	authors := make([]*types.User, 0, len(authorIDs))
	for _, id := range authorIDs {
		author, err := ss.userService.GetModel(ctx, id)
		if err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	userViews, err := ss.userService.BuildViews(ctx, authors)
	if err != nil {
		return nil, err
	}

	counts, err := ss.recipeRepo.CountByAuthors(ctx, nil, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}
	recipes, err := ss.recipeRepo.ListByAuthors(ctx, nil, authorIDs, recipesLimit)
	if err != nil {
		return nil, fmt.Errorf("list author recipes: %w", err)
	}
	recipesByAuthor := map[uuid.UUID][]*types.Recipe{}
	for _, r := range recipes {
		recipesByAuthor[r.AuthorID] = append(recipesByAuthor[r.AuthorID], r)
	}

	views := make([]*SubscriptionView, 0, len(userViews))
	for _, uv := range userViews {
		shorts := ss.recipeService.BuildShortViews(recipesByAuthor[uv.ID])
		views = append(views, &SubscriptionView{
			UserView:     *uv,
			Recipes:      shorts,
			RecipesCount: counts[uv.ID],
		})
	}
	return views, nil
}
