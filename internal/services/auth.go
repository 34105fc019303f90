package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/data/repos"
	authrepo "github.com/foodgram/foodgram-backend/internal/data/repos/auth"
	userrepo "github.com/foodgram/foodgram-backend/internal/data/repos/user"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/requestdata"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, error)
	LogoutUser(ctx context.Context) error
	SetPassword(ctx context.Context, currentPassword, newPassword string) error
	SetContextFromToken(ctx context.Context, token string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      userrepo.UserRepo
	userTokenRepo authrepo.UserTokenRepo
	avatarService AvatarService
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo userrepo.UserRepo,
	userTokenRepo authrepo.UserTokenRepo,
	avatarService AvatarService,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatarService: avatarService,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if user.Email == "" || user.Username == "" || user.FirstName == "" || user.LastName == "" {
		return fmt.Errorf("%w: all of email, username, first_name, last_name are required", ErrInvalidInput)
	}
	if len(user.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hashed)

	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user.ID = uuid.New()
		if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
			if repos.IsUniqueViolation(err) {
				return fmt.Errorf("%w: email or username is taken", ErrConflict)
			}
			return fmt.Errorf("create user: %w", err)
		}
		if err := as.avatarService.SetGenerated(ctx, tx, user); err != nil {
			return fmt.Errorf("generate avatar: %w", err)
		}
		return nil
	})
}

// LoginUser returns the user's opaque bearer token, issuing one if none
// exists. Repeat logins reuse the live token.
func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", fmt.Errorf("lookup user by email: %w", err)
	}
	if len(users) == 0 {
		return "", ErrUnauthorized
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	var token string
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if err != nil {
			return fmt.Errorf("check existing token: %w", err)
		}
		if len(existing) > 0 {
			token = existing[0].AuthToken
			return nil
		}

		generated, err := generateAuthToken()
		if err != nil {
			return err
		}
		if _, err := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{{
			UserID:    user.ID,
			AuthToken: generated,
		}}); err != nil {
			return fmt.Errorf("store token: %w", err)
		}
		token = generated
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	return as.userTokenRepo.DeleteByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
}

func (as *authService) SetPassword(ctx context.Context, currentPassword, newPassword string) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: new password must be at least 8 characters", ErrInvalidInput)
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if len(users) == 0 {
		return ErrNotFound
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return fmt.Errorf("%w: current password is wrong", ErrInvalidInput)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return as.userRepo.UpdatePassword(ctx, nil, user.ID, string(hashed))
}

// SetContextFromToken resolves a bearer token to its user and stores
// both on the context for handlers downstream.
func (as *authService) SetContextFromToken(ctx context.Context, token string) (context.Context, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx, ErrUnauthorized
	}

	tokens, err := as.userTokenRepo.GetByAuthTokens(ctx, nil, []string{token})
	if err != nil {
		return ctx, fmt.Errorf("lookup token: %w", err)
	}
	if len(tokens) == 0 {
		return ctx, ErrUnauthorized
	}

	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		AuthToken: token,
		UserID:    tokens[0].UserID,
	}), nil
}

// generateAuthToken mints an opaque 40-char hex token.
func generateAuthToken() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
