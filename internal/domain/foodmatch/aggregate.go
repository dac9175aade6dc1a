package foodmatch

import (
	"sort"

	"github.com/mkazanov/nutrilog/internal/domain"
)

// AggregateExternal ranks external candidates by similarity, aggregates
// their calorie values robustly and applies the confidence policy.
//
// The top candidates (params.TopCandidates) are filtered to plausible
// calorie values; with at least params.RobustMinEvidence of them the
// weighted median of those values replaces the top candidate's own figure
// (source external_robust), which shrugs off a single miscoded outlier.
// With less evidence the top candidate's value is used verbatim
// (source external_best).
//
// An empty candidate list yields needs_manual_input.
func AggregateExternal(candidates []domain.Candidate, params *Params) *domain.ResolutionResult {
	if len(candidates) == 0 {
		return &domain.ResolutionResult{
			Status: domain.ResolutionNeedsManualInput,
			Note:   "external_empty",
		}
	}

	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)

	// Rank by score descending; ties break on name so the ordering never
	// depends on retrieval order.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].Name < ranked[j].Name
	})

	top := ranked
	if len(top) > params.TopCandidates {
		top = top[:params.TopCandidates]
	}

	var values, weights []float64
	for _, c := range top {
		if c.Kcal100g > params.PlausibleKcalMin && c.Kcal100g < params.PlausibleKcalMax {
			values = append(values, c.Kcal100g)
			w := float64(c.MatchScore)
			if w < 1 {
				w = 1
			}
			weights = append(weights, w)
		}
	}

	best := top[0]
	secondScore := 0
	if len(top) > 1 {
		secondScore = top[1].MatchScore
	}

	confidence := baseConfidence(best.MatchScore, params)
	if best.MatchScore-secondScore >= params.SpreadBonusThreshold {
		confidence += params.SpreadBonus
	}
	if len(values) >= params.RobustMinEvidence {
		confidence += params.EvidenceBonus
	}
	confidence = clamp(confidence, 0, params.MaxConfidence)

	chosen := best
	if len(values) >= params.RobustMinEvidence {
		chosen.Kcal100g = weightedMedian(values, weights)
		chosen.Source = domain.CandidateSourceExternalRobust
	} else {
		chosen.Source = domain.CandidateSourceExternalBest
	}

	options := ranked
	if len(options) > params.MaxOptions {
		options = options[:params.MaxOptions]
	}

	if confidence < params.AutoAcceptConfidence {
		return &domain.ResolutionResult{
			Status:     domain.ResolutionNeedsChoice,
			Options:    options,
			Confidence: confidence,
			Note:       "external_low_confidence",
		}
	}

	return &domain.ResolutionResult{
		Status:     domain.ResolutionResolved,
		Chosen:     &chosen,
		Options:    options,
		Confidence: confidence,
		Note:       string(chosen.Source),
	}
}

// baseConfidence maps the best similarity score to a base confidence band.
func baseConfidence(bestScore int, params *Params) int {
	switch {
	case bestScore >= params.HighScoreBand:
		return params.HighConfidence
	case bestScore >= params.MidScoreBand:
		return params.MidConfidence
	case bestScore >= params.LowScoreBand:
		return params.LowConfidence
	default:
		return params.FloorConfidence
	}
}

// weightedMedian returns the value at which cumulative weight first reaches
// half the total weight, among (value, weight) pairs sorted by value.
// With a non-positive total weight it degrades to the plain median.
// The result is always one of the input values, which keeps a single
// heavily-weighted outlier from dragging the estimate off the data.
func weightedMedian(values, weights []float64) float64 {
	type pair struct {
		value  float64
		weight float64
	}

	pairs := make([]pair, len(values))
	total := 0.0
	for i, v := range values {
		pairs[i] = pair{value: v, weight: weights[i]}
		total += weights[i]
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })

	if total <= 0 {
		return pairs[len(pairs)/2].value
	}

	cumulative := 0.0
	for _, p := range pairs {
		cumulative += p.weight
		if cumulative >= total/2 {
			return p.value
		}
	}

	return pairs[len(pairs)-1].value
}

// clamp limits v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
