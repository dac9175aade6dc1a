package foodmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazanov/nutrilog/internal/domain"
)

func TestScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100, Score("банан", "банан"))
	assert.Equal(t, 0, Score("", "банан"))
	assert.Equal(t, 0, Score("банан", ""))

	// Similar but not identical strings land between the extremes.
	s := Score("бананы", "банан")
	assert.Greater(t, s, 80)
	assert.Less(t, s, 100)

	// Unrelated strings score low.
	assert.Less(t, Score("сыр", "яблочный пирог"), 40)
}

func TestBestLocalMatch(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	serving := 120.0
	foods := map[string]*domain.FoodRecord{
		"банан": {
			Key:          "банан",
			DisplayName:  "Банан",
			Kcal100g:     89,
			ServingGrams: &serving,
			Source:       domain.FoodSourceLearned,
		},
		"овсяная каша": {
			Key:         "овсяная каша",
			DisplayName: "Овсяная каша",
			Kcal100g:    88,
			Source:      domain.FoodSourceManual,
		},
	}

	t.Run("exact key hit", func(t *testing.T) {
		t.Parallel()
		cand := BestLocalMatch("Банан!", foods, params)
		require.NotNil(t, cand)
		assert.Equal(t, "Банан", cand.Name)
		assert.Equal(t, 100, cand.MatchScore)
		assert.Equal(t, domain.CandidateSourceCustomExact, cand.Source)
		assert.InDelta(t, 89, cand.Kcal100g, 0.001)
		require.NotNil(t, cand.ServingGrams)
		assert.InDelta(t, 120, *cand.ServingGrams, 0.001)
	})

	t.Run("fuzzy hit", func(t *testing.T) {
		t.Parallel()
		cand := BestLocalMatch("бананы", foods, params)
		require.NotNil(t, cand)
		assert.Equal(t, "Банан", cand.Name)
		assert.Equal(t, domain.CandidateSourceCustomFuzzy, cand.Source)
		assert.GreaterOrEqual(t, cand.MatchScore, params.FuzzyAcceptScore)
	})

	t.Run("nothing above floor", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BestLocalMatch("xyzzy", foods, params))
	})

	t.Run("empty query", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BestLocalMatch("   ", foods, params))
	})

	t.Run("empty food list", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, BestLocalMatch("банан", nil, params))
	})

	t.Run("non-positive kcal treated as absent", func(t *testing.T) {
		t.Parallel()
		broken := map[string]*domain.FoodRecord{
			"банан": {Key: "банан", DisplayName: "Банан", Kcal100g: 0},
		}
		assert.Nil(t, BestLocalMatch("банан", broken, params))
	})
}

func TestBestLocalMatchDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	// Two keys equally similar to the query; the lexicographically
	// smaller one must win regardless of map iteration order.
	foods := map[string]*domain.FoodRecord{
		"творог 5": {Key: "творог 5", DisplayName: "Творог 5%", Kcal100g: 121},
		"творог 9": {Key: "творог 9", DisplayName: "Творог 9%", Kcal100g: 159},
	}

	for i := 0; i < 20; i++ {
		cand := BestLocalMatch("творог", foods, params)
		require.NotNil(t, cand)
		assert.Equal(t, "Творог 5%", cand.Name)
	}
}

func TestResolveLocal(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()

	t.Run("exact hit resolves with exact confidence", func(t *testing.T) {
		t.Parallel()
		foods := map[string]*domain.FoodRecord{
			"банан": {Key: "банан", DisplayName: "Банан", Kcal100g: 89},
		}

		res := ResolveLocal("банан", foods, params)
		require.NotNil(t, res)
		assert.Equal(t, domain.ResolutionResolved, res.Status)
		require.NotNil(t, res.Chosen)
		assert.Equal(t, params.ExactConfidence, res.Confidence)
		assert.Equal(t, string(domain.CandidateSourceCustomExact), res.Note)
	})

	t.Run("strong fuzzy hit resolves with capped confidence", func(t *testing.T) {
		t.Parallel()
		foods := map[string]*domain.FoodRecord{
			"банан": {Key: "банан", DisplayName: "Банан", Kcal100g: 89},
		}

		res := ResolveLocal("бананы", foods, params)
		require.NotNil(t, res)
		assert.Equal(t, domain.ResolutionResolved, res.Status)
		require.NotNil(t, res.Chosen)
		assert.Equal(t, domain.CandidateSourceCustomFuzzy, res.Chosen.Source)
		assert.LessOrEqual(t, res.Confidence, params.FuzzyConfidenceCap)
		assert.GreaterOrEqual(t, res.Confidence, params.FuzzyAcceptScore)
	})

	t.Run("weak fuzzy hit needs confirmation", func(t *testing.T) {
		t.Parallel()
		// "каша овсяная" vs "каша рисовая" scores in the confirmation
		// band: above the floor, below the acceptance threshold.
		foods := map[string]*domain.FoodRecord{
			"каша рисовая": {Key: "каша рисовая", DisplayName: "Каша рисовая", Kcal100g: 130},
		}

		res := ResolveLocal("каша овсяная", foods, params)
		require.NotNil(t, res)
		assert.Equal(t, domain.ResolutionNeedsChoice, res.Status)
		assert.Nil(t, res.Chosen)
		require.Len(t, res.Options, 1)
		assert.Equal(t, "Каша рисовая", res.Options[0].Name)
		assert.Equal(t, "custom_fuzzy_low", res.Note)
		assert.GreaterOrEqual(t, res.Confidence, params.FuzzyFloorScore)
		assert.Less(t, res.Confidence, params.FuzzyAcceptScore)
	})

	t.Run("no local evidence", func(t *testing.T) {
		t.Parallel()
		foods := map[string]*domain.FoodRecord{
			"банан": {Key: "банан", DisplayName: "Банан", Kcal100g: 89},
		}
		assert.Nil(t, ResolveLocal("пицца маргарита", foods, params))
	})
}

func TestBarcodeQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "ean13", input: "4601234567890", expected: "4601234567890", ok: true},
		{name: "ean8", input: "46012345", expected: "46012345", ok: true},
		{name: "interior spaces", input: "4601 2345 6789 0", expected: "4601234567890", ok: true},
		{name: "too short", input: "1234567", ok: false},
		{name: "too long", input: "123456789012345", ok: false},
		{name: "letters", input: "46012345a7890", ok: false},
		{name: "plain food name", input: "банан", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, ok := BarcodeQuery(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, code)
			}
		})
	}
}
