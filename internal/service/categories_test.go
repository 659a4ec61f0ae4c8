package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitness-score-server/internal/domain"
)

func TestCalculateCardiovascularPoints(t *testing.T) {
	tests := []struct {
		name     string
		rhr      float64
		hrv      float64
		vo2max   float64
		expected int
	}{
		{"all metrics at athlete level", 48, 75, 55, 30},
		{"all metrics average", 68, 45, 37, 15},
		{"all metrics zero means no data", 0, 0, 0, 0},
		{"single metric available", 52, 0, 0, 9},
		{"poor across the board", 95, 15, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateCardiovascularPoints(tt.rhr, tt.hrv, tt.vo2max)

			assert.Equal(t, tt.expected, result.Total)
			assert.Equal(t, domain.CARDIOVASCULAR, result.Category)
			require.Len(t, result.Items, 3)
			assert.Equal(t, "Resting Heart Rate", result.Items[0].Name)
			assert.Equal(t, "Heart Rate Variability", result.Items[1].Name)
			assert.Equal(t, "VO2 Max", result.Items[2].Name)
		})
	}
}

func TestCalculateRecoveryPoints(t *testing.T) {
	tests := []struct {
		name        string
		deep        float64
		rem         float64
		consistency float64
		expected    int
	}{
		{"optimal recovery", 21, 23, 100, 35},
		{"good recovery", 15.5, 18, 75, 25},
		{"no data", 0, 0, 0, 0},
		{"sleep stages without consistency", 20, 22, 0, 27},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateRecoveryPoints(tt.deep, tt.rem, tt.consistency)

			assert.Equal(t, tt.expected, result.Total)
			assert.Equal(t, domain.RECOVERY, result.Category)
			require.Len(t, result.Items, 3)
		})
	}
}

func TestCalculateActivityPoints(t *testing.T) {
	tests := []struct {
		name      string
		minutes   float64
		intensity float64
		steps     float64
		expected  int
	}{
		{"very active", 60, 100, 12500, 30},
		{"guideline activity", 21, 50, 8000, 17},
		{"no data", 0, 0, 0, 0},
		{"steps only", 0, 0, 10500, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateActivityPoints(tt.minutes, tt.intensity, tt.steps)

			assert.Equal(t, tt.expected, result.Total)
			assert.Equal(t, domain.ACTIVITY, result.Category)
			require.Len(t, result.Items, 3)
		})
	}
}

func TestCategoryTotalsNeverExceedMaximum(t *testing.T) {
	// Absurdly large inputs must clamp to the category maxima, not overflow
	// them.
	cardio := CalculateCardiovascularPoints(1, 1e9, 1e9)
	recovery := CalculateRecoveryPoints(1e9, 1e9, 1e9)
	activity := CalculateActivityPoints(1e9, 1e9, 1e9)

	assert.Equal(t, domain.MaxCardiovascularPoints, cardio.Total)
	assert.Equal(t, domain.MaxRecoveryPoints, recovery.Total)
	assert.Equal(t, domain.MaxActivityPoints, activity.Total)

	for _, item := range append(append(cardio.Items, recovery.Items...), activity.Items...) {
		assert.LessOrEqual(t, item.Points, item.MaxPoints)
		assert.GreaterOrEqual(t, item.Points, 0)
	}
}

func TestDefensiveInputHandling(t *testing.T) {
	// NaN and negative inputs clamp to zero points instead of panicking or
	// producing garbage.
	cardio := CalculateCardiovascularPoints(math.NaN(), -50, math.NaN())
	assert.Equal(t, 0, cardio.Total)

	recovery := CalculateRecoveryPoints(-1, math.NaN(), -100)
	assert.Equal(t, 0, recovery.Total)

	activity := CalculateActivityPoints(math.NaN(), -20, -1)
	assert.Equal(t, 0, activity.Total)
}

func TestSubMetricMonotonicity(t *testing.T) {
	// Moving any sub-metric in its favorable direction never lowers its
	// points.
	t.Run("lower resting heart rate never scores worse", func(t *testing.T) {
		prev := -1
		for rhr := 120.0; rhr >= 40; rhr-- {
			item := scoreRestingHeartRate(rhr)
			assert.GreaterOrEqual(t, item.Points, prev, "rhr %.0f", rhr)
			prev = item.Points
		}
	})

	t.Run("higher deep sleep never scores worse", func(t *testing.T) {
		prev := -1
		for pct := 1.0; pct <= 30; pct += 0.5 {
			item := scoreDeepSleep(pct)
			assert.GreaterOrEqual(t, item.Points, prev, "deep %.1f", pct)
			prev = item.Points
		}
	})

	t.Run("more steps never score worse", func(t *testing.T) {
		prev := -1
		for steps := 100.0; steps <= 20000; steps += 100 {
			item := scoreDailySteps(steps)
			assert.GreaterOrEqual(t, item.Points, prev, "steps %.0f", steps)
			prev = item.Points
		}
	})

	t.Run("higher HRV never scores worse", func(t *testing.T) {
		prev := -1
		for hrv := 1.0; hrv <= 120; hrv++ {
			item := scoreHeartRateVariability(hrv)
			assert.GreaterOrEqual(t, item.Points, prev, "hrv %.0f", hrv)
			prev = item.Points
		}
	})
}

func TestLinearSubMetricScaling(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected int
	}{
		{"consistency 100 maps to full points", 100, 8},
		{"consistency 50 maps to half points", 50, 4},
		{"consistency above range clamps", 250, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := scoreSleepConsistency(tt.value)
			assert.Equal(t, tt.expected, item.Points)
		})
	}

	assert.Equal(t, 12, scoreTrainingIntensity(100).Points)
	assert.Equal(t, 6, scoreTrainingIntensity(50).Points)
	assert.Equal(t, 0, scoreTrainingIntensity(0).Points)
}
