package domain

// Unit is the unit attached to a parsed quantity.
type Unit string

// Recognized quantity units
const (
	// UnitGrams and UnitMilliliters convert to grams directly
	// (milliliters assume density 1).
	UnitGrams       Unit = "g"
	UnitMilliliters Unit = "ml"

	// UnitPiece and UnitServing need a known serving size to convert.
	UnitPiece   Unit = "piece"
	UnitServing Unit = "serving"

	// UnitSmallNumber is a bare number with no unit suffix, small enough
	// that it most likely means pieces rather than grams. Like piece and
	// serving it needs a serving size to convert.
	UnitSmallNumber Unit = "ambiguous_small_number"
)

// QuantitySpec is an amount plus unit parsed from the tail of a food query.
// Amount is always positive.
type QuantitySpec struct {
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}

// NeedsServingSize reports whether converting this quantity to grams
// requires a known per-piece/per-serving gram weight.
func (q QuantitySpec) NeedsServingSize() bool {
	switch q.Unit {
	case UnitPiece, UnitServing, UnitSmallNumber:
		return true
	default:
		return false
	}
}
