package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitness-score-server/internal/domain"
)

func TestCalculateBonusPoints(t *testing.T) {
	tests := []struct {
		name           string
		cardio         int
		recovery       int
		activity       int
		expectedPoints int
		expectedNames  []string
	}{
		{
			name:           "no category qualifies",
			cardio:         10, recovery: 12, activity: 9,
			expectedPoints: 0,
			expectedNames:  []string{},
		},
		{
			name:           "one category qualifies",
			cardio:         23, recovery: 20, activity: 15,
			expectedPoints: 1,
			expectedNames:  []string{"Cardiovascular"},
		},
		{
			name:           "two categories qualify",
			cardio:         23, recovery: 20, activity: 23,
			expectedPoints: 3,
			expectedNames:  []string{"Cardiovascular", "Activity"},
		},
		{
			name:           "all three qualify",
			cardio:         30, recovery: 35, activity: 30,
			expectedPoints: 5,
			expectedNames:  []string{"Cardiovascular", "Recovery", "Activity"},
		},
		{
			name:           "just below the recovery threshold",
			cardio:         23, recovery: 26, activity: 23,
			expectedPoints: 3,
			expectedNames:  []string{"Cardiovascular", "Activity"},
		},
		{
			name:           "recovery crosses its threshold at 27",
			cardio:         0, recovery: 27, activity: 0,
			expectedPoints: 1,
			expectedNames:  []string{"Recovery"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateBonusPoints(tt.cardio, tt.recovery, tt.activity)

			assert.Equal(t, tt.expectedPoints, result.Points)
			assert.Equal(t, tt.expectedNames, result.Breakdown.ExcellentCategories)
			assert.Contains(t, []int{0, 1, 3, 5}, result.Points)
			assert.NotEmpty(t, result.Explanation)
		})
	}
}

func TestBonusBreakdownStructuredFlags(t *testing.T) {
	result := CalculateBonusPoints(30, 20, 30)

	assert.True(t, result.Breakdown.CardiovascularExcellent)
	assert.False(t, result.Breakdown.RecoveryExcellent)
	assert.True(t, result.Breakdown.ActivityExcellent)
	assert.Equal(t, 100, result.Breakdown.CardiovascularPercent)
	assert.Equal(t, 57, result.Breakdown.RecoveryPercent)
	assert.Equal(t, 100, result.Breakdown.ActivityPercent)
}

func TestBonusExplanationNamesAllThree(t *testing.T) {
	result := CalculateBonusPoints(30, 35, 30)

	assert.Contains(t, result.Explanation, "All three categories")
	assert.Contains(t, result.Explanation, "Cardiovascular")
	assert.Contains(t, result.Explanation, "Recovery")
	assert.Contains(t, result.Explanation, "Activity")
}

func TestDetermineFitnessLevel(t *testing.T) {
	tests := []struct {
		score    int
		expected domain.FitnessLevel
	}{
		{0, domain.POOR},
		{39, domain.POOR},
		{40, domain.FAIR},
		{59, domain.FAIR},
		{60, domain.GOOD},
		{74, domain.GOOD},
		{75, domain.VERY_GOOD},
		{89, domain.VERY_GOOD},
		{90, domain.EXCELLENT},
		{100, domain.EXCELLENT},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetermineFitnessLevel(tt.score), "score %d", tt.score)
	}
}

func TestLevelBandsMatchDetermineFitnessLevel(t *testing.T) {
	bands := LevelBands()
	require.Len(t, bands, 5)

	for _, band := range bands {
		assert.Equal(t, band.Level, DetermineFitnessLevel(band.MinScore), "min of %s", band.Level)
		assert.Equal(t, band.Level, DetermineFitnessLevel(band.MaxScore), "max of %s", band.Level)
	}

	// Bands are contiguous over 0-100.
	assert.Equal(t, 0, bands[0].MinScore)
	assert.Equal(t, 100, bands[len(bands)-1].MaxScore)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].MaxScore+1, bands[i].MinScore)
	}
}
