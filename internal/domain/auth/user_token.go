package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/domain/user"
)

// UserToken is the opaque bearer token issued by the token login endpoint.
// One live token per user: login reuses it, logout deletes it.
type UserToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AuthToken string     `gorm:"uniqueIndex;not null;column:auth_token" json:"auth_token"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (UserToken) TableName() string { return "user_token" }

func (t *UserToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
