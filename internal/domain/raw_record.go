package domain

// RawRecord is one product record as returned by the external nutrition
// database, reduced to the fields the calorie extractor understands.
// All nutrient fields are optional; the extractor decides which of them
// yield a usable kcal/100g value and drops records that yield none.
type RawRecord struct {
	// Name is the product name as reported by the database.
	Name string

	// KcalPer100g is the direct energy-kcal_100g field, when present.
	KcalPer100g *float64

	// KJPer100g is the energy-kj_100g field, when present.
	KJPer100g *float64

	// EnergyPer100g is the generic energy_100g field, which the upstream
	// database usually reports in kilojoules.
	EnergyPer100g *float64

	// Macronutrients per 100g, used for the Atwater fallback estimate.
	Proteins100g *float64
	Fat100g      *float64
	Carbs100g    *float64

	// ServingSize is a free-text serving descriptor such as "30 g",
	// "250ml" or "1 bar (40g)".
	ServingSize string
}
