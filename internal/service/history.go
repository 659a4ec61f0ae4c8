package service

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/domain"
)

// Daily and historical aggregation. Each day is scored independently with the
// same per-day reduction used for live scoring, so historical and live scores
// are directly comparable.

// ReduceDayRecord folds one day's raw samples into a HealthMetrics record.
// Heart-rate and HRV samples are averaged, sleep stages become percentages of
// time asleep, and the day's training minutes are projected back onto a
// monthly total so the orchestrator's daily-average conversion round-trips.
func ReduceDayRecord(day domain.DayRecord) domain.HealthMetrics {
	deepPct, remPct := reduceSleepSamples(day.SleepSamples)
	dailyMinutes, intensity := reduceTrainingSessions(day.TrainingSessions)

	return domain.HealthMetrics{
		RestingHeartRate:     meanOf(day.RestingHeartRateSamples),
		HeartRateVariability: meanOf(day.HRVSamples),
		VO2Max:               sanitize(day.VO2Max),
		DeepSleepPercentage:  deepPct,
		REMSleepPercentage:   remPct,
		SleepConsistency:     sanitize(day.SleepConsistency),
		MonthlyTrainingTime:  dailyMinutes * domain.TrainingDaysPerMonth,
		TrainingIntensity:    intensity,
		DailySteps:           sanitize(day.Steps),
	}
}

// CalculateDailyFitnessScore scores a single historical day. No cross-day
// state is involved.
func (s *Scorer) CalculateDailyFitnessScore(day domain.DayRecord) domain.FitnessScoreResult {
	result := s.CalculateFitnessScore(ReduceDayRecord(day))
	result.Date = day.Date
	return result
}

// CalculateDailyScoresFromHistoricalData scores every day independently.
// Output ordering matches input ordering; empty input yields an empty slice.
func (s *Scorer) CalculateDailyScoresFromHistoricalData(days []domain.DayRecord) []domain.FitnessScoreResult {
	scores := make([]domain.FitnessScoreResult, 0, len(days))
	for _, day := range days {
		scores = append(scores, s.CalculateDailyFitnessScore(day))
	}

	s.logger.WithFields(logrus.Fields{
		"days":   len(days),
		"scores": len(scores),
	}).Debug("Scored historical days")

	return scores
}

// CalculateMonthlyAverageFromDailyScores reduces daily scores to their
// arithmetic mean, per component for transparency. An empty sequence yields
// the zero value rather than an error.
func CalculateMonthlyAverageFromDailyScores(dailyScores []domain.FitnessScoreResult) domain.MonthlyAverage {
	if len(dailyScores) == 0 {
		return domain.MonthlyAverage{}
	}

	var avg domain.MonthlyAverage
	for _, score := range dailyScores {
		avg.TotalScore += float64(score.TotalScore)
		avg.CardiovascularPoints += float64(score.CardiovascularPoints)
		avg.RecoveryPoints += float64(score.RecoveryPoints)
		avg.ActivityPoints += float64(score.ActivityPoints)
		avg.BonusPoints += float64(score.BonusPoints)
	}

	n := float64(len(dailyScores))
	avg.Days = len(dailyScores)
	avg.TotalScore /= n
	avg.CardiovascularPoints /= n
	avg.RecoveryPoints /= n
	avg.ActivityPoints /= n
	avg.BonusPoints /= n
	avg.FitnessLevel = DetermineFitnessLevel(int(math.Round(avg.TotalScore)))

	return avg
}

// CalculateDailyBasedMonthlyAverage is the canonical monthly-trend entry
// point: raw historical samples to daily scores to monthly average.
func (s *Scorer) CalculateDailyBasedMonthlyAverage(days []domain.DayRecord) domain.MonthlyAverage {
	return CalculateMonthlyAverageFromDailyScores(s.CalculateDailyScoresFromHistoricalData(days))
}

func meanOf(samples []float64) float64 {
	var sum float64
	var count int
	for _, v := range samples {
		v = sanitize(v)
		if v > 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// reduceSleepSamples converts per-stage sleep minutes into deep and REM
// percentages of total time asleep. Awake intervals do not count as sleep.
func reduceSleepSamples(samples []domain.SleepSample) (deepPct, remPct float64) {
	var deep, rem, asleep float64
	for _, sample := range samples {
		minutes := sanitize(sample.Minutes)
		switch sample.Stage {
		case domain.STAGE_DEEP:
			deep += minutes
			asleep += minutes
		case domain.STAGE_REM:
			rem += minutes
			asleep += minutes
		case domain.STAGE_CORE:
			asleep += minutes
		}
	}
	if asleep == 0 {
		return 0, 0
	}
	return deep / asleep * 100, rem / asleep * 100
}

// reduceTrainingSessions sums the day's training minutes and computes a
// duration-weighted mean intensity.
func reduceTrainingSessions(sessions []domain.TrainingSession) (minutes, intensity float64) {
	var weighted float64
	for _, session := range sessions {
		m := sanitize(session.Minutes)
		minutes += m
		weighted += m * sanitize(session.Intensity)
	}
	if minutes == 0 {
		return 0, 0
	}
	return minutes, weighted / minutes
}
