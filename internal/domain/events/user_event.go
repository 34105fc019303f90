package events

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/domain/user"
)

const (
	EventCartAdded       = "cart_added"
	EventCartRemoved     = "cart_removed"
	EventFavoriteAdded   = "favorite_added"
	EventFavoriteRemoved = "favorite_removed"
	EventSubscribed      = "subscribed"
	EventUnsubscribed    = "unsubscribed"
	EventListDownloaded  = "list_downloaded"
)

// UserEvent is an append-only activity record with a free-form JSON payload.
type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"index;not null" json:"user_id"`
	User      *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	EventType string         `gorm:"not null;index;column:event_type" json:"event_type"`
	Payload   datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
}

func (UserEvent) TableName() string { return "user_event" }

func (e *UserEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
