package service

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/domain"
)

// Scorer composes the category calculators and the bonus utility into the
// total-score computation. The computation itself is pure; the only state is
// an optional in-process memoization cache keyed by the input record.
type Scorer struct {
	logger *logrus.Logger
	cache  *lru.Cache[domain.HealthMetrics, domain.FitnessScoreResult]
}

// NewScorer creates a new fitness scorer. A cacheSize of zero disables the
// memoization cache.
func NewScorer(logger *logrus.Logger, cacheSize int) *Scorer {
	s := &Scorer{logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New[domain.HealthMetrics, domain.FitnessScoreResult](cacheSize)
		if err != nil {
			logger.WithError(err).Warn("Failed to create score cache, continuing without it")
		} else {
			s.cache = cache
		}
	}
	return s
}

// CalculateFitnessScore computes the full 0-100 fitness score for one set of
// health metrics. Identical input always yields identical output.
func (s *Scorer) CalculateFitnessScore(metrics domain.HealthMetrics) domain.FitnessScoreResult {
	if s.cache != nil {
		if cached, ok := s.cache.Get(metrics); ok {
			s.logger.Debug("Fitness score served from cache")
			return cached
		}
	}

	// Monthly training time is scored as a daily average; all other fields
	// pass through unchanged.
	dailyTrainingMinutes := metrics.MonthlyTrainingTime / domain.TrainingDaysPerMonth

	cardio := CalculateCardiovascularPoints(metrics.RestingHeartRate, metrics.HeartRateVariability, metrics.VO2Max)
	recovery := CalculateRecoveryPoints(metrics.DeepSleepPercentage, metrics.REMSleepPercentage, metrics.SleepConsistency)
	activity := CalculateActivityPoints(dailyTrainingMinutes, metrics.TrainingIntensity, metrics.DailySteps)

	bonus := CalculateBonusPoints(cardio.Total, recovery.Total, activity.Total)

	total := cardio.Total + recovery.Total + activity.Total + bonus.Points
	level := DetermineFitnessLevel(total)

	items := make([]domain.HistoryItem, 0, len(cardio.Items)+len(recovery.Items)+len(activity.Items)+1)
	items = append(items, cardio.Items...)
	items = append(items, recovery.Items...)
	items = append(items, activity.Items...)
	items = append(items, domain.HistoryItem{
		Name:      "Consistency Bonus",
		Category:  domain.BONUS,
		Points:    bonus.Points,
		MaxPoints: domain.MaxBonusPoints,
		Rationale: bonus.Explanation,
	})

	result := domain.FitnessScoreResult{
		TotalScore:           total,
		CardiovascularPoints: cardio.Total,
		RecoveryPoints:       recovery.Total,
		ActivityPoints:       activity.Total,
		BonusPoints:          bonus.Points,
		FitnessLevel:         level,
		BonusBreakdown:       bonus.Breakdown,
		HistoryItems:         items,
	}

	if s.cache != nil {
		s.cache.Add(metrics, result)
	}

	s.logger.WithFields(logrus.Fields{
		"total_score":    result.TotalScore,
		"cardiovascular": result.CardiovascularPoints,
		"recovery":       result.RecoveryPoints,
		"activity":       result.ActivityPoints,
		"bonus":          result.BonusPoints,
		"fitness_level":  result.FitnessLevel.String(),
	}).Debug("Completed fitness score calculation")

	return result
}
