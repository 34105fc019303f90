package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subsrepo "github.com/foodgram/foodgram-backend/internal/data/repos/subscriptions"
	userrepo "github.com/foodgram/foodgram-backend/internal/data/repos/user"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

// UserView is the API shape of a user, including whether the caller
// follows them.
type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
	Avatar       string    `json:"avatar"`
}

type UserService interface {
	Me(ctx context.Context) (*UserView, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*UserView, int64, error)
	GetModel(ctx context.Context, userID uuid.UUID) (*types.User, error)
	BuildViews(ctx context.Context, users []*types.User) ([]*UserView, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	subsRepo subsrepo.SubscriptionRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, subsRepo subsrepo.SubscriptionRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, subsRepo: subsRepo}
}

func (us *userService) Me(ctx context.Context) (*UserView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	return us.GetUser(ctx, rd.UserID)
}

func (us *userService) GetModel(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users[0], nil
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := us.GetModel(ctx, userID)
	if err != nil {
		return nil, err
	}
	views, err := us.BuildViews(ctx, []*types.User{user})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (us *userService) ListUsers(ctx context.Context, offset, limit int) ([]*UserView, int64, error) {
	users, total, err := us.userRepo.List(ctx, nil, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	views, err := us.BuildViews(ctx, users)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// BuildViews resolves is_subscribed in one query for the whole batch.
func (us *userService) BuildViews(ctx context.Context, users []*types.User) ([]*UserView, error) {
	subscribed := map[uuid.UUID]bool{}
	rd := requestdata.GetRequestData(ctx)
	if rd != nil && rd.UserID != uuid.Nil && len(users) > 0 {
		ids := make([]uuid.UUID, 0, len(users))
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

		var err error
		subscribed, err = us.subsRepo.AuthorIDsSubscribed(ctx, nil, rd.UserID, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve subscriptions: %w", err)
		}
	}

	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		views = append(views, &UserView{
			ID:           u.ID,
			Email:        u.Email,
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			IsSubscribed: subscribed[u.ID],
			Avatar:       u.AvatarURL,
		})
	}
	return views, nil
}
