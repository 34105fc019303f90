package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/domain/user"
)

type Favorite struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"not null;index:idx_favorite_user_recipe,unique" json:"user_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RecipeID uuid.UUID  `gorm:"not null;index:idx_favorite_user_recipe,unique" json:"recipe_id"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Favorite) TableName() string { return "favorite" }

func (f *Favorite) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// ShoppingCartEntry queues a recipe for shopping-list export. Set semantics:
// at most one row per (user, recipe).
type ShoppingCartEntry struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"not null;index:idx_cart_user_recipe,unique" json:"user_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RecipeID uuid.UUID  `gorm:"not null;index:idx_cart_user_recipe,unique" json:"recipe_id"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShoppingCartEntry) TableName() string { return "shopping_cart_entry" }

func (e *ShoppingCartEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type Subscription struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID  `gorm:"not null;index:idx_subscription_user_author,unique" json:"user_id"`
	User     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	AuthorID uuid.UUID  `gorm:"not null;index:idx_subscription_user_author,unique" json:"author_id"`
	Author   *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Subscription) TableName() string { return "subscription" }

func (s *Subscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type ShortLink struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code     string    `gorm:"uniqueIndex;not null;column:code" json:"code"`
	RecipeID uuid.UUID `gorm:"uniqueIndex;not null" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ShortLink) TableName() string { return "short_link" }

func (l *ShortLink) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
