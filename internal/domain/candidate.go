package domain

// CandidateSource identifies where a calorie candidate came from.
type CandidateSource string

// Possible candidate sources
const (
	// CandidateSourceCustomExact is an exact key match in the user's food list.
	CandidateSourceCustomExact CandidateSource = "custom_exact"

	// CandidateSourceCustomFuzzy is a fuzzy match in the user's food list.
	CandidateSourceCustomFuzzy CandidateSource = "custom_fuzzy"

	// CandidateSourceExternal is a single ranked hit from the external
	// nutrition database, before any aggregation.
	CandidateSourceExternal CandidateSource = "external"

	// CandidateSourceExternalBest is the top-ranked external hit, used
	// verbatim when there was too little evidence for robust aggregation.
	CandidateSourceExternalBest CandidateSource = "external_best"

	// CandidateSourceExternalRobust is the top-ranked external hit carrying
	// the weighted-median kcal value aggregated across several hits.
	CandidateSourceExternalRobust CandidateSource = "external_robust"

	// CandidateSourceBarcode is an authoritative barcode point lookup.
	CandidateSourceBarcode CandidateSource = "barcode"
)

// Candidate is a possible kcal-per-100g match for a query, tagged with its
// provenance and a 0-100 similarity score. Candidates are transient: they
// live for a single resolution turn and are never persisted.
// Every candidate produced by the pipeline has Kcal100g > 0; records that
// yield no usable calorie value are filtered out before a Candidate exists.
type Candidate struct {
	Name         string          `json:"name"`
	Kcal100g     float64         `json:"kcal_100g"`
	MatchScore   int             `json:"match_score"`
	Source       CandidateSource `json:"source"`
	ServingGrams *float64        `json:"serving_grams,omitempty"`
}
