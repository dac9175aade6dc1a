package foodmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazanov/nutrilog/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func TestKcalPer100g(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rec      *domain.RawRecord
		expected float64
		ok       bool
	}{
		{
			name:     "direct kcal field wins",
			rec:      &domain.RawRecord{KcalPer100g: floatPtr(89), KJPer100g: floatPtr(9999)},
			expected: 89,
			ok:       true,
		},
		{
			name:     "kilojoules converted",
			rec:      &domain.RawRecord{KJPer100g: floatPtr(418.4)},
			expected: 100,
			ok:       true,
		},
		{
			name:     "generic energy field treated as kilojoules",
			rec:      &domain.RawRecord{EnergyPer100g: floatPtr(836.8)},
			expected: 200,
			ok:       true,
		},
		{
			name: "macronutrient estimate",
			rec: &domain.RawRecord{
				Proteins100g: floatPtr(10),
				Fat100g:      floatPtr(5),
				Carbs100g:    floatPtr(20),
			},
			expected: 165,
			ok:       true,
		},
		{
			name: "zero kcal falls through to kilojoules",
			rec:  &domain.RawRecord{KcalPer100g: floatPtr(0), KJPer100g: floatPtr(418.4)},

			expected: 100,
			ok:       true,
		},
		{
			name: "no usable fields",
			rec:  &domain.RawRecord{Name: "mystery"},
			ok:   false,
		},
		{
			name: "nil record",
			rec:  nil,
			ok:   false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			kcal, ok := KcalPer100g(tc.rec)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.expected, kcal, 0.01)
			}
		})
	}
}

func TestServingGramsFromDescriptor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor string
		expected   float64
		ok         bool
	}{
		{name: "grams with space", descriptor: "30 g", expected: 30, ok: true},
		{name: "grams without space", descriptor: "40g", expected: 40, ok: true},
		{name: "cyrillic grams", descriptor: "30 г", expected: 30, ok: true},
		{name: "milliliters as grams", descriptor: "250ml", expected: 250, ok: true},
		{name: "cyrillic milliliters", descriptor: "200 мл", expected: 200, ok: true},
		{name: "embedded in text", descriptor: "1 bar (40g)", expected: 40, ok: true},
		{name: "comma decimal", descriptor: "32,5 g", expected: 32.5, ok: true},
		{name: "no quantity", descriptor: "one serving", ok: false},
		{name: "empty", descriptor: "", ok: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ServingGramsFromDescriptor(tc.descriptor)
			if !tc.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tc.expected, *got, 0.001)
		})
	}
}

func TestCandidatesFromRecords(t *testing.T) {
	t.Parallel()

	params := NewDefaultParams()
	records := []domain.RawRecord{
		{Name: "Банан", KcalPer100g: floatPtr(89), ServingSize: "120 г"},
		{Name: "Банановое пюре", KcalPer100g: floatPtr(56)},
		{Name: "Без калорий"},
	}

	candidates := CandidatesFromRecords("банан", records, params)

	require.Len(t, candidates, 2)

	assert.Equal(t, "Банан", candidates[0].Name)
	assert.Equal(t, 100, candidates[0].MatchScore)
	assert.Equal(t, domain.CandidateSourceExternal, candidates[0].Source)
	require.NotNil(t, candidates[0].ServingGrams)
	assert.InDelta(t, 120, *candidates[0].ServingGrams, 0.001)

	assert.Equal(t, "Банановое пюре", candidates[1].Name)
	assert.Less(t, candidates[1].MatchScore, 100)
	assert.Nil(t, candidates[1].ServingGrams)
}
