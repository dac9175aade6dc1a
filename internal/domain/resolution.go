package domain

// ResolutionStatus represents the outcome class of a resolution attempt.
type ResolutionStatus string

// Possible resolution statuses
const (
	// ResolutionResolved means a candidate was accepted automatically.
	ResolutionResolved ResolutionStatus = "resolved"

	// ResolutionNeedsChoice means the user must pick among the top options.
	ResolutionNeedsChoice ResolutionStatus = "needs_choice"

	// ResolutionNeedsManualInput means no evidence was found at all and the
	// user must supply a kcal/100g value directly.
	ResolutionNeedsManualInput ResolutionStatus = "needs_manual_input"
)

// MaxConfidence is the global upper bound on resolution confidence.
// No path through the pipeline may report more, including barcode hits.
const MaxConfidence = 95

// ResolutionResult is the outcome of one pass through the food-matching
// pipeline. Chosen is set only when Status is ResolutionResolved; Options
// carries up to three ranked candidates for the needs_choice case.
// Confidence is always in [0, MaxConfidence].
type ResolutionResult struct {
	Status     ResolutionStatus `json:"status"`
	Chosen     *Candidate       `json:"chosen,omitempty"`
	Options    []Candidate      `json:"options,omitempty"`
	Confidence int              `json:"confidence"`
	Note       string           `json:"note,omitempty"`
}
