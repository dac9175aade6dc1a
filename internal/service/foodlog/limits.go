package foodlog

// Limits bound the values a user may enter during a logging conversation.
// They are sanity caps, not nutrition advice; anything beyond them is far
// more likely a typo than a real meal.
type Limits struct {
	// MaxManualKcal100g caps manually entered calorie density.
	MaxManualKcal100g float64

	// MaxServingGrams caps a learned per-piece or per-serving weight.
	MaxServingGrams float64

	// MaxMealGrams caps the total gram amount of one logged meal.
	MaxMealGrams float64
}

// NewDefaultLimits returns the built-in limits.
func NewDefaultLimits() Limits {
	return Limits{
		MaxManualKcal100g: 2000,
		MaxServingGrams:   2000,
		MaxMealGrams:      5000,
	}
}
