package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/foodgram-backend/internal/domain/user"
)

type Recipe struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID      uuid.UUID  `gorm:"index;not null" json:"-"`
	Author        *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"-"`
	Name          string     `gorm:"not null;column:name" json:"name"`
	Text          string     `gorm:"not null;column:text" json:"text"`
	CookingTime   int        `gorm:"not null;column:cooking_time" json:"cooking_time"`
	ImageMediaKey string     `gorm:"column:image_media_key" json:"-"`
	ImageURL      string     `gorm:"column:image_url" json:"image"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

func (r *Recipe) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with a positive integer
// amount in the ingredient's measurement unit. Unique per (recipe, ingredient).
type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"not null;index:idx_recipe_ingredient,unique" json:"recipe_id"`
	Recipe       *Recipe     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`
	IngredientID uuid.UUID   `gorm:"not null;index:idx_recipe_ingredient,unique" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	Amount       int64       `gorm:"not null;column:amount" json:"amount"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredient" }

func (ri *RecipeIngredient) BeforeCreate(*gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID uuid.UUID `gorm:"not null;index:idx_recipe_tag,unique" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`
	TagID    uuid.UUID `gorm:"not null;index:idx_recipe_tag,unique" json:"tag_id"`
	Tag      *Tag      `gorm:"constraint:OnDelete:CASCADE;foreignKey:TagID;references:ID" json:"tag,omitempty"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }

func (rt *RecipeTag) BeforeCreate(*gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}
