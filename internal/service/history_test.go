package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitness-score-server/internal/domain"
)

func sampleDayRecord(date string) domain.DayRecord {
	return domain.DayRecord{
		Date:                    date,
		Steps:                   9500,
		RestingHeartRateSamples: []float64{60, 62},
		HRVSamples:              []float64{50, 54},
		VO2Max:                  44,
		SleepConsistency:        80,
		SleepSamples: []domain.SleepSample{
			{Stage: domain.STAGE_DEEP, Minutes: 90},
			{Stage: domain.STAGE_REM, Minutes: 100},
			{Stage: domain.STAGE_CORE, Minutes: 210},
			{Stage: domain.STAGE_AWAKE, Minutes: 25},
		},
		TrainingSessions: []domain.TrainingSession{
			{Minutes: 30, Intensity: 60},
			{Minutes: 30, Intensity: 80},
		},
	}
}

func TestReduceDayRecord(t *testing.T) {
	metrics := ReduceDayRecord(sampleDayRecord("2026-08-01"))

	assert.InDelta(t, 61, metrics.RestingHeartRate, 0.001)
	assert.InDelta(t, 52, metrics.HeartRateVariability, 0.001)
	assert.InDelta(t, 44, metrics.VO2Max, 0.001)
	// Awake minutes do not count toward time asleep: 400 asleep minutes.
	assert.InDelta(t, 22.5, metrics.DeepSleepPercentage, 0.001)
	assert.InDelta(t, 25, metrics.REMSleepPercentage, 0.001)
	assert.InDelta(t, 80, metrics.SleepConsistency, 0.001)
	// 60 daily minutes projected back to a monthly total.
	assert.InDelta(t, 1800, metrics.MonthlyTrainingTime, 0.001)
	assert.InDelta(t, 70, metrics.TrainingIntensity, 0.001)
	assert.InDelta(t, 9500, metrics.DailySteps, 0.001)
}

func TestReduceDayRecord_Empty(t *testing.T) {
	metrics := ReduceDayRecord(domain.DayRecord{Date: "2026-08-01"})
	assert.Equal(t, domain.HealthMetrics{}, metrics)
}

func TestHistoricalScoresMatchLiveScores(t *testing.T) {
	scorer := newTestScorer(t)
	day := sampleDayRecord("2026-08-01")

	daily := scorer.CalculateDailyFitnessScore(day)
	live := scorer.CalculateFitnessScore(ReduceDayRecord(day))

	assert.Equal(t, "2026-08-01", daily.Date)
	daily.Date = ""
	assert.Equal(t, live, daily)
}

func TestCalculateDailyScoresFromHistoricalData(t *testing.T) {
	scorer := newTestScorer(t)

	t.Run("empty input yields empty output", func(t *testing.T) {
		scores := scorer.CalculateDailyScoresFromHistoricalData(nil)
		assert.NotNil(t, scores)
		assert.Empty(t, scores)
	})

	t.Run("output ordering matches input ordering", func(t *testing.T) {
		days := []domain.DayRecord{
			sampleDayRecord("2026-08-03"),
			sampleDayRecord("2026-08-01"),
			sampleDayRecord("2026-08-02"),
		}

		scores := scorer.CalculateDailyScoresFromHistoricalData(days)

		require.Len(t, scores, 3)
		assert.Equal(t, "2026-08-03", scores[0].Date)
		assert.Equal(t, "2026-08-01", scores[1].Date)
		assert.Equal(t, "2026-08-02", scores[2].Date)
	})
}

func TestCalculateMonthlyAverageFromDailyScores(t *testing.T) {
	t.Run("empty sequence averages to zero", func(t *testing.T) {
		avg := CalculateMonthlyAverageFromDailyScores(nil)
		assert.Equal(t, domain.MonthlyAverage{}, avg)
	})

	t.Run("component means", func(t *testing.T) {
		scores := []domain.FitnessScoreResult{
			{TotalScore: 80, CardiovascularPoints: 24, RecoveryPoints: 28, ActivityPoints: 25, BonusPoints: 3},
			{TotalScore: 60, CardiovascularPoints: 18, RecoveryPoints: 22, ActivityPoints: 20, BonusPoints: 0},
		}

		avg := CalculateMonthlyAverageFromDailyScores(scores)

		assert.Equal(t, 2, avg.Days)
		assert.InDelta(t, 70, avg.TotalScore, 0.001)
		assert.InDelta(t, 21, avg.CardiovascularPoints, 0.001)
		assert.InDelta(t, 25, avg.RecoveryPoints, 0.001)
		assert.InDelta(t, 22.5, avg.ActivityPoints, 0.001)
		assert.InDelta(t, 1.5, avg.BonusPoints, 0.001)
		assert.Equal(t, domain.GOOD, avg.FitnessLevel)
	})
}

func TestCalculateDailyBasedMonthlyAverage(t *testing.T) {
	scorer := newTestScorer(t)

	days := []domain.DayRecord{
		sampleDayRecord("2026-08-01"),
		sampleDayRecord("2026-08-02"),
	}

	avg := scorer.CalculateDailyBasedMonthlyAverage(days)
	direct := CalculateMonthlyAverageFromDailyScores(scorer.CalculateDailyScoresFromHistoricalData(days))

	assert.Equal(t, direct, avg)
	assert.Equal(t, 2, avg.Days)
	assert.Greater(t, avg.TotalScore, 0.0)
}
