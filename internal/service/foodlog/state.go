package foodlog

import (
	"github.com/mkazanov/nutrilog/internal/domain"
)

// conversationState is the pending question of a user's logging
// conversation. Exactly one concrete state exists per kind of question, so
// every state carries only the fields that question needs and illegal
// combinations are unrepresentable.
//
// States live in memory only. A restart drops pending conversations, which
// at worst makes the user repeat one message.
type conversationState interface {
	conversationState()
}

// awaitingChoice waits for the user to pick one of the offered candidates
// or to reject them all and enter a value manually.
type awaitingChoice struct {
	query    string
	quantity *domain.QuantitySpec
	options  []domain.Candidate
}

// awaitingManualKcal waits for a kcal/100g value because resolution found
// nothing usable (or the user rejected every option).
type awaitingManualKcal struct {
	query    string
	quantity *domain.QuantitySpec
}

// awaitingServingGrams waits for the gram weight of one piece or serving of
// a food that resolved but has no known serving size. It carries the
// resolved calorie value plus the confidence and provenance of the
// resolution, which end up on the final log entry.
type awaitingServingGrams struct {
	query      string
	foodName   string
	kcal100g   float64
	amount     float64
	confidence int
	source     string
}

// awaitingGrams waits for the eaten amount in grams of a food that resolved
// without any quantity in the original message.
type awaitingGrams struct {
	query      string
	foodName   string
	kcal100g   float64
	confidence int
	source     string
}

func (awaitingChoice) conversationState()       {}
func (awaitingManualKcal) conversationState()   {}
func (awaitingServingGrams) conversationState() {}
func (awaitingGrams) conversationState()        {}
