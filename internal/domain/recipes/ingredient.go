package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is immutable reference data loaded in bulk by the
// loadingredients command; it is never created through the API.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;index:idx_ingredient_name_unit,unique;column:name" json:"name"`
	MeasurementUnit string    `gorm:"not null;index:idx_ingredient_name_unit,unique;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredient" }

func (i *Ingredient) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
