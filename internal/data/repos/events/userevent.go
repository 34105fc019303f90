package events

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type UserEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) error
	ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, limit int) ([]*types.UserEvent, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	repoLog := baseLog.With("repo", "UserEventRepo")
	return &userEventRepo{db: db, log: repoLog}
}

func (uer *userEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = uer.db
	}

	if len(events) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&events).Error
}

func (uer *userEventRepo) ListByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, limit int) ([]*types.UserEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = uer.db
	}

	var results []*types.UserEvent
	if len(userIDs) == 0 {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
