package foodmatch

// Params defines all configurable heuristics of the matching pipeline.
// The defaults reproduce the tuned behavior of the production resolver;
// individual values can be overridden through ParamsConfig.
type Params struct {
	// Local matching thresholds (0-100 similarity scores).
	FuzzyAcceptScore int // fuzzy local match usable without confirmation
	FuzzyFloorScore  int // below this a local match is treated as absent

	// Confidence assigned to local matches.
	ExactConfidence    int // exact key hit
	FuzzyConfidenceCap int // fuzzy hit confidence is min(cap, score)

	// External aggregation.
	TopCandidates     int     // candidates kept for aggregation, ranked by score
	MaxOptions        int     // options exposed to the user on needs_choice
	PlausibleKcalMin  float64 // exclusive lower bound for plausible kcal/100g
	PlausibleKcalMax  float64 // exclusive upper bound for plausible kcal/100g
	RobustMinEvidence int     // plausible values required for the weighted median

	// Confidence scoring: base confidence by best-score band, then bonuses.
	HighScoreBand        int // best score >= this -> HighConfidence
	MidScoreBand         int // best score >= this -> MidConfidence
	LowScoreBand         int // best score >= this -> LowConfidence
	HighConfidence       int
	MidConfidence        int
	LowConfidence        int
	FloorConfidence      int // best score below LowScoreBand
	SpreadBonusThreshold int // bonus when best minus second-best >= this
	SpreadBonus          int
	EvidenceBonus        int // bonus when RobustMinEvidence plausible values fed in
	MaxConfidence        int // global clamp
	AutoAcceptConfidence int // resolved when confidence reaches this

	// Quantity parsing: a bare number up to this value with no unit suffix
	// is treated as an ambiguous small count rather than grams.
	SmallNumberMax float64
}

// ParamsConfig allows overriding the default parameters when creating a new
// Params instance. Zero values mean "keep the default".
type ParamsConfig struct {
	FuzzyAcceptScore int
	FuzzyFloorScore  int

	TopCandidates     int
	MaxOptions        int
	PlausibleKcalMax  float64
	RobustMinEvidence int

	SpreadBonusThreshold int
	SpreadBonus          int
	EvidenceBonus        int
	AutoAcceptConfidence int

	SmallNumberMax float64
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FuzzyAcceptScore: 85,
		FuzzyFloorScore:  70,

		ExactConfidence:    95,
		FuzzyConfidenceCap: 90,

		TopCandidates:     5,
		MaxOptions:        3,
		PlausibleKcalMin:  0,
		PlausibleKcalMax:  900,
		RobustMinEvidence: 3,

		HighScoreBand:        90,
		MidScoreBand:         80,
		LowScoreBand:         70,
		HighConfidence:       85,
		MidConfidence:        75,
		LowConfidence:        60,
		FloorConfidence:      40,
		SpreadBonusThreshold: 10,
		SpreadBonus:          5,
		EvidenceBonus:        5,
		MaxConfidence:        95,
		AutoAcceptConfidence: 75,

		SmallNumberMax: 10,
	}
}

// NewParams creates a new Params instance with custom configuration applied
// on top of the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.FuzzyAcceptScore > 0 {
		params.FuzzyAcceptScore = config.FuzzyAcceptScore
	}
	if config.FuzzyFloorScore > 0 {
		params.FuzzyFloorScore = config.FuzzyFloorScore
	}
	if config.TopCandidates > 0 {
		params.TopCandidates = config.TopCandidates
	}
	if config.MaxOptions > 0 {
		params.MaxOptions = config.MaxOptions
	}
	if config.PlausibleKcalMax > 0 {
		params.PlausibleKcalMax = config.PlausibleKcalMax
	}
	if config.RobustMinEvidence > 0 {
		params.RobustMinEvidence = config.RobustMinEvidence
	}
	if config.SpreadBonusThreshold > 0 {
		params.SpreadBonusThreshold = config.SpreadBonusThreshold
	}
	if config.SpreadBonus > 0 {
		params.SpreadBonus = config.SpreadBonus
	}
	if config.EvidenceBonus > 0 {
		params.EvidenceBonus = config.EvidenceBonus
	}
	if config.AutoAcceptConfidence > 0 {
		params.AutoAcceptConfidence = config.AutoAcceptConfidence
	}
	if config.SmallNumberMax > 0 {
		params.SmallNumberMax = config.SmallNumberMax
	}

	return params
}
