package service

import (
	"math"
	"time"

	"github.com/fitness-score-server/internal/domain"
)

// Legacy adapters bridge the older pre-aggregated history shape into the
// current scoring rules. The scoring function is injected rather than
// imported so the legacy layer never depends on the orchestrator package
// internals.

// ScoreFunc is the injected scoring dependency, satisfied by
// (*Scorer).CalculateFitnessScore.
type ScoreFunc func(domain.HealthMetrics) domain.FitnessScoreResult

// ConvertLegacyMetrics maps the legacy per-day shape onto the current input
// record. Legacy TrainingMinutes is already a monthly total.
func ConvertLegacyMetrics(m domain.LegacyDayMetrics) domain.HealthMetrics {
	return domain.HealthMetrics{
		RestingHeartRate:     m.RHR,
		HeartRateVariability: m.HRV,
		VO2Max:               m.VO2,
		DeepSleepPercentage:  m.DeepSleep,
		REMSleepPercentage:   m.RemSleep,
		SleepConsistency:     m.SleepRegularity,
		MonthlyTrainingTime:  m.TrainingMinutes,
		TrainingIntensity:    m.TrainingIntensity,
		DailySteps:           m.Steps,
	}
}

// ConvertHistoricalDataToHistoryItems scores each legacy day with the
// injected scoring function, preserving input ordering.
func ConvertHistoricalDataToHistoryItems(historicalData []domain.LegacyDayMetrics, score ScoreFunc) []domain.LegacyHistoryItem {
	items := make([]domain.LegacyHistoryItem, 0, len(historicalData))
	for _, legacy := range historicalData {
		result := score(ConvertLegacyMetrics(legacy))
		result.Date = legacy.Date
		items = append(items, domain.LegacyHistoryItem{
			Date:   legacy.Date,
			Result: result,
		})
	}
	return items
}

// CalculateMonthlyAverage averages previously scored legacy days together
// with a freshly scored current-day record. Behaviorally equivalent to
// scoring the whole period day by day and reducing.
func CalculateMonthlyAverage(historyItems []domain.LegacyHistoryItem, currentMetrics domain.HealthMetrics, score ScoreFunc) domain.MonthlyAverage {
	scores := make([]domain.FitnessScoreResult, 0, len(historyItems)+1)
	for _, item := range historyItems {
		scores = append(scores, item.Result)
	}
	scores = append(scores, score(currentMetrics))
	return CalculateMonthlyAverageFromDailyScores(scores)
}

// GenerateSampleHistoryData produces a deterministic synthetic score sequence
// for demonstrations and tests. Because the scoring function is injected, the
// samples always reflect the current scoring rules.
func GenerateSampleHistoryData(score ScoreFunc, days int) []domain.FitnessScoreResult {
	results := make([]domain.FitnessScoreResult, 0, days)
	start := time.Now().AddDate(0, 0, -days)

	for i := 0; i < days; i++ {
		// A slow weekly wave over plausible baseline values keeps the
		// samples varied but reproducible within a run.
		wave := math.Sin(2 * math.Pi * float64(i) / 7)
		metrics := domain.HealthMetrics{
			RestingHeartRate:     58 + 4*wave,
			HeartRateVariability: 55 - 10*wave,
			VO2Max:               42,
			DeepSleepPercentage:  16 + 3*wave,
			REMSleepPercentage:   20 - 2*wave,
			SleepConsistency:     80 + 10*wave,
			MonthlyTrainingTime:  900 + 300*wave,
			TrainingIntensity:    65 + 15*wave,
			DailySteps:           9000 + 2500*wave,
		}

		result := score(metrics)
		result.Date = start.AddDate(0, 0, i+1).Format("2006-01-02")
		results = append(results, result)
	}

	return results
}
