package foodmatch

import (
	"math"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/mkazanov/nutrilog/internal/domain"
)

// Score computes a 0-100 similarity ratio between two normalized strings
// using the Ratcliff/Obershelp sequence matcher, character by character.
// Either side being empty scores 0.
func Score(a, b string) int {
	if a == "" || b == "" {
		return 0
	}

	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return int(math.Round(m.Ratio() * 100))
}

// BestLocalMatch finds the best candidate for the query in the user's
// learned-food mapping. An exact key hit scores 100 with source
// custom_exact; otherwise the highest-scoring fuzzy key wins, provided it
// reaches params.FuzzyFloorScore. Keys are visited in lexicographic order
// and a later key must score strictly higher to replace the current best,
// so ties deterministically go to the smallest key.
//
// Records with a non-positive kcal value are treated as absent rather than
// surfaced as unusable candidates.
func BestLocalMatch(
	query string,
	foods map[string]*domain.FoodRecord,
	params *Params,
) *domain.Candidate {
	qn := Normalize(query)
	if qn == "" || len(foods) == 0 {
		return nil
	}

	if rec, ok := foods[qn]; ok && rec != nil && rec.Kcal100g > 0 {
		return &domain.Candidate{
			Name:         rec.DisplayName,
			Kcal100g:     rec.Kcal100g,
			MatchScore:   100,
			Source:       domain.CandidateSourceCustomExact,
			ServingGrams: rec.ServingGrams,
		}
	}

	keys := make([]string, 0, len(foods))
	for k := range foods {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bestKey := ""
	bestScore := -1
	for _, k := range keys {
		if s := Score(qn, k); s > bestScore {
			bestKey, bestScore = k, s
		}
	}

	if bestScore < params.FuzzyFloorScore {
		return nil
	}

	rec := foods[bestKey]
	if rec == nil || rec.Kcal100g <= 0 {
		return nil
	}

	name := rec.DisplayName
	if name == "" {
		name = bestKey
	}

	return &domain.Candidate{
		Name:         name,
		Kcal100g:     rec.Kcal100g,
		MatchScore:   bestScore,
		Source:       domain.CandidateSourceCustomFuzzy,
		ServingGrams: rec.ServingGrams,
	}
}

// ResolveLocal applies the local-match acceptance policy. It returns nil
// when the learned-food mapping provides no evidence for the query, in
// which case the caller should consult the external database.
//
// An exact hit, or a fuzzy hit at or above FuzzyAcceptScore, resolves
// immediately; a fuzzy hit in the confirmation band is returned as a single
// option requiring the user's choice.
func ResolveLocal(
	query string,
	foods map[string]*domain.FoodRecord,
	params *Params,
) *domain.ResolutionResult {
	cand := BestLocalMatch(query, foods, params)
	if cand == nil {
		return nil
	}

	if cand.Source == domain.CandidateSourceCustomExact || cand.MatchScore >= params.FuzzyAcceptScore {
		confidence := params.ExactConfidence
		if cand.Source == domain.CandidateSourceCustomFuzzy {
			confidence = cand.MatchScore
			if confidence > params.FuzzyConfidenceCap {
				confidence = params.FuzzyConfidenceCap
			}
		}
		return &domain.ResolutionResult{
			Status:     domain.ResolutionResolved,
			Chosen:     cand,
			Options:    []domain.Candidate{*cand},
			Confidence: confidence,
			Note:       string(cand.Source),
		}
	}

	return &domain.ResolutionResult{
		Status:     domain.ResolutionNeedsChoice,
		Options:    []domain.Candidate{*cand},
		Confidence: cand.MatchScore,
		Note:       "custom_fuzzy_low",
	}
}

// BarcodeQuery reports whether the query is a bare product barcode:
// 8 to 14 digits, ignoring interior spaces. Returns the digit string.
func BarcodeQuery(query string) (string, bool) {
	code := strings.ReplaceAll(strings.TrimSpace(query), " ", "")
	if len(code) < 8 || len(code) > 14 {
		return "", false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return code, true
}
