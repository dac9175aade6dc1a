package openfoodfacts

import (
	"strconv"
	"strings"

	"github.com/mkazanov/nutrilog/internal/domain"
)

// searchResponse is the payload of /cgi/search.pl.
type searchResponse struct {
	Products []product `json:"products"`
}

// productResponse is the payload of /api/v0/product/{code}.json.
// Status is 1 when the barcode is known.
type productResponse struct {
	Status  int      `json:"status"`
	Product *product `json:"product"`
}

type product struct {
	ProductName string     `json:"product_name"`
	ServingSize string     `json:"serving_size"`
	Nutriments  nutriments `json:"nutriments"`
}

// nutriments carries the energy and macronutrient fields. The upstream
// database is loosely typed and reports these as numbers or strings
// depending on the product, so they are decoded as any and coerced.
type nutriments struct {
	EnergyKcal100g any `json:"energy-kcal_100g"`
	EnergyKJ100g   any `json:"energy-kj_100g"`
	Energy100g     any `json:"energy_100g"`
	Proteins100g   any `json:"proteins_100g"`
	Fat100g        any `json:"fat_100g"`
	Carbs100g      any `json:"carbohydrates_100g"`
}

// toRawRecord maps a product into the reduced record shape.
// Returns nil for products without a name; they cannot be scored.
func (p *product) toRawRecord() *domain.RawRecord {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		return nil
	}

	return &domain.RawRecord{
		Name:          name,
		KcalPer100g:   toFloat(p.Nutriments.EnergyKcal100g),
		KJPer100g:     toFloat(p.Nutriments.EnergyKJ100g),
		EnergyPer100g: toFloat(p.Nutriments.Energy100g),
		Proteins100g:  toFloat(p.Nutriments.Proteins100g),
		Fat100g:       toFloat(p.Nutriments.Fat100g),
		Carbs100g:     toFloat(p.Nutriments.Carbs100g),
		ServingSize:   strings.TrimSpace(p.ServingSize),
	}
}

// toFloat coerces a loosely typed nutriment value to a float pointer.
// Unparseable or absent values become nil.
func toFloat(v any) *float64 {
	switch val := v.(type) {
	case float64:
		return &val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}
