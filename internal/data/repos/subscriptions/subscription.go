package subscriptions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
)

type SubscriptionRepo interface {
	Add(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error
	Remove(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error)
	Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error)
	ListAuthorIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]uuid.UUID, int64, error)
	AuthorIDsSubscribed(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	repoLog := baseLog.With("repo", "SubscriptionRepo")
	return &subscriptionRepo{db: db, log: repoLog}
}

func (sr *subscriptionRepo) Add(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).Create(sub).Error
}

func (sr *subscriptionRepo) Remove(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	res := transaction.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	return res.RowsAffected, res.Error
}

func (sr *subscriptionRepo) Exists(ctx context.Context, tx *gorm.DB, userID, authorID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAuthorIDsByUser pages in subscription creation order so the
// subscriptions feed is stable between requests.
func (sr *subscriptionRepo) ListAuthorIDsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]uuid.UUID, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Order("created_at ASC")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ids []uuid.UUID
	if err := q.Pluck("author_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

func (sr *subscriptionRepo) AuthorIDsSubscribed(ctx context.Context, tx *gorm.DB, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	result := make(map[uuid.UUID]bool, len(authorIDs))
	if len(authorIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
