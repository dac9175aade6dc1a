package foodmatch

import (
	"regexp"
	"strings"

	"github.com/mkazanov/nutrilog/internal/domain"
)

// kjPerKcal converts kilojoules to kilocalories.
const kjPerKcal = 4.184

// Atwater general factors, kcal per gram.
const (
	atwaterProtein = 4.0
	atwaterFat     = 9.0
	atwaterCarbs   = 4.0
)

var (
	// \b is ASCII-only in regexp, so the unit must be followed by a
	// non-letter or the end of the string to also terminate Cyrillic units.
	servingGramsRE = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:grams|gram|гр|г|g)(?:[^\p{L}]|$)`)
	servingMlRE    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:мл|ml)(?:[^\p{L}]|$)`)
)

// KcalPer100g derives a kcal/100g value from a raw nutrition record, in
// priority order: the direct kcal field, the kilojoule field (converted),
// then an Atwater 4-9-4 estimate from macronutrients. Returns false when
// no usable positive value can be derived; such records are dropped by
// the caller rather than treated as errors.
func KcalPer100g(rec *domain.RawRecord) (float64, bool) {
	if rec == nil {
		return 0, false
	}

	if rec.KcalPer100g != nil && *rec.KcalPer100g > 0 {
		return *rec.KcalPer100g, true
	}

	kj := rec.KJPer100g
	if kj == nil {
		// The generic energy field is usually kilojoules.
		kj = rec.EnergyPer100g
	}
	if kj != nil && *kj > 0 {
		return *kj / kjPerKcal, true
	}

	if rec.Proteins100g != nil && rec.Fat100g != nil && rec.Carbs100g != nil {
		est := atwaterProtein*(*rec.Proteins100g) +
			atwaterFat*(*rec.Fat100g) +
			atwaterCarbs*(*rec.Carbs100g)
		if est > 0 {
			return est, true
		}
	}

	return 0, false
}

// ServingGramsFromDescriptor parses a leading gram or milliliter quantity
// out of a free-text serving descriptor such as "30 g", "250ml" or
// "1 bar (40g)". Milliliters are treated as grams (density 1).
// Returns nil when the descriptor carries no parseable quantity.
func ServingGramsFromDescriptor(descriptor string) *float64 {
	s := strings.ToLower(strings.TrimSpace(descriptor))
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")

	for _, re := range []*regexp.Regexp{servingGramsRE, servingMlRE} {
		if m := re.FindStringSubmatch(s); m != nil {
			if v, ok := parsePositiveFloat(m[1]); ok {
				return &v
			}
		}
	}

	return nil
}

// CandidatesFromRecords converts raw external records into scored
// candidates for the query. Records without a usable calorie value are
// filtered out silently; the rest are scored by name similarity against
// the normalized query.
func CandidatesFromRecords(query string, records []domain.RawRecord, params *Params) []domain.Candidate {
	qn := Normalize(query)

	candidates := make([]domain.Candidate, 0, len(records))
	for i := range records {
		rec := &records[i]

		kcal, ok := KcalPer100g(rec)
		if !ok {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Name:         rec.Name,
			Kcal100g:     kcal,
			MatchScore:   Score(qn, Normalize(rec.Name)),
			Source:       domain.CandidateSourceExternal,
			ServingGrams: ServingGramsFromDescriptor(rec.ServingSize),
		})
	}

	return candidates
}
