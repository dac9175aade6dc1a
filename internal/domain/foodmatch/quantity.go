package foodmatch

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mkazanov/nutrilog/internal/domain"
)

var (
	gramsTokenRE   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:г|гр|g|gram|grams)$`)
	mlTokenRE      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:мл|ml)$`)
	pieceTokenRE   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:шт|pcs|piece|pieces)$`)
	servingTokenRE = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:порц(?:ия|ии|ий)?|serving|servings|portion|portions)$`)
	bareNumberRE   = regexp.MustCompile(`^(\d+(?:\.\d+)?)$`)
)

// parsePositiveFloat parses s as a strictly positive float.
func parsePositiveFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// ParseAmount interprets a trailing quantity token such as "250г", "0.5",
// "2 шт" or "1 порция". The token must already be lowercased with commas
// mapped to dots; callers pass the candidate token produced by SplitQuantity.
//
// A bare number with no unit suffix is grams when it exceeds
// params.SmallNumberMax and an ambiguous small count otherwise; the
// ambiguity is settled later in the conversation. Milliliters map to grams
// at density 1. Returns nil when the token is not a quantity.
func ParseAmount(token string, params *Params) *domain.QuantitySpec {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	for _, entry := range []struct {
		re   *regexp.Regexp
		unit domain.Unit
	}{
		{gramsTokenRE, domain.UnitGrams},
		{mlTokenRE, domain.UnitMilliliters},
		{pieceTokenRE, domain.UnitPiece},
		{servingTokenRE, domain.UnitServing},
	} {
		if m := entry.re.FindStringSubmatch(token); m != nil {
			v, ok := parsePositiveFloat(m[1])
			if !ok {
				return nil
			}
			return &domain.QuantitySpec{Amount: v, Unit: entry.unit}
		}
	}

	if m := bareNumberRE.FindStringSubmatch(token); m != nil {
		v, ok := parsePositiveFloat(m[1])
		if !ok {
			return nil
		}
		unit := domain.UnitGrams
		if v <= params.SmallNumberMax {
			unit = domain.UnitSmallNumber
		}
		return &domain.QuantitySpec{Amount: v, Unit: unit}
	}

	return nil
}

// SplitQuantity separates a free-text meal entry into the food name and an
// optional trailing quantity. It tries the last token, then the last two
// tokens joined ("2 шт", "1 порция"), and keeps at least one token for the
// food name so "250" alone stays a name, not a quantity.
//
// The returned name preserves the original casing of the kept tokens; the
// quantity is nil when no trailing token parses as one.
func SplitQuantity(text string, params *Params) (string, *domain.QuantitySpec) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) < 2 {
		return strings.Join(fields, " "), nil
	}

	normalizeToken := func(tok string) string {
		return strings.ReplaceAll(strings.ToLower(tok), ",", ".")
	}

	if len(fields) >= 3 {
		pair := normalizeToken(fields[len(fields)-2]) + " " + normalizeToken(fields[len(fields)-1])
		if spec := ParseAmount(pair, params); spec != nil {
			return strings.Join(fields[:len(fields)-2], " "), spec
		}
	}

	if spec := ParseAmount(normalizeToken(fields[len(fields)-1]), params); spec != nil {
		return strings.Join(fields[:len(fields)-1], " "), spec
	}

	return strings.Join(fields, " "), nil
}

// ConvertToGrams converts a quantity to grams. Piece and serving quantities
// need a per-food serving size; when servingGrams is nil for those units the
// second return is false and the caller must ask the user for it. Ambiguous
// small numbers are treated as piece counts here, matching how they are
// resolved in conversation.
func ConvertToGrams(spec domain.QuantitySpec, servingGrams *float64) (float64, bool) {
	switch spec.Unit {
	case domain.UnitGrams, domain.UnitMilliliters:
		return spec.Amount, true
	case domain.UnitPiece, domain.UnitServing, domain.UnitSmallNumber:
		if servingGrams == nil || *servingGrams <= 0 {
			return 0, false
		}
		return spec.Amount * *servingGrams, true
	default:
		return 0, false
	}
}
