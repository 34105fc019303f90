package recipes

// AggregatedLine is one consolidated row of a user's shopping list: every
// RecipeIngredient in the user's cart with the same (name, measurement unit)
// collapses into one line. Derived on demand, never persisted.
type AggregatedLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}
