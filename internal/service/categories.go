package service

import (
	"fmt"
	"math"

	"github.com/fitness-score-server/internal/domain"
)

// Category point calculators. All three are pure functions: a zero, negative
// or NaN input means "no data" and scores zero points for that sub-metric,
// never an error. Sub-metric points are clamped to their own maximum and the
// category total is clamped to the category maximum as a defensive invariant.

// CalculateCardiovascularPoints scores resting heart rate, heart rate
// variability and VO2 max against a maximum of 30 points.
func CalculateCardiovascularPoints(rhr, hrv, vo2max float64) domain.CategoryResult {
	items := []domain.HistoryItem{
		scoreRestingHeartRate(rhr),
		scoreHeartRateVariability(hrv),
		scoreVO2Max(vo2max),
	}
	return buildCategoryResult(domain.CARDIOVASCULAR, domain.MaxCardiovascularPoints, items)
}

// CalculateRecoveryPoints scores deep sleep, REM sleep and sleep consistency
// against a maximum of 35 points.
func CalculateRecoveryPoints(deepSleepPct, remSleepPct, sleepConsistency float64) domain.CategoryResult {
	items := []domain.HistoryItem{
		scoreDeepSleep(deepSleepPct),
		scoreREMSleep(remSleepPct),
		scoreSleepConsistency(sleepConsistency),
	}
	return buildCategoryResult(domain.RECOVERY, domain.MaxRecoveryPoints, items)
}

// CalculateActivityPoints scores daily training time, training intensity and
// daily steps against a maximum of 30 points. The caller is responsible for
// converting a monthly training total into a daily average first.
func CalculateActivityPoints(dailyTrainingMinutes, trainingIntensity, dailySteps float64) domain.CategoryResult {
	items := []domain.HistoryItem{
		scoreTrainingTime(dailyTrainingMinutes),
		scoreTrainingIntensity(trainingIntensity),
		scoreDailySteps(dailySteps),
	}
	return buildCategoryResult(domain.ACTIVITY, domain.MaxActivityPoints, items)
}

// buildCategoryResult sums the item points and clamps the total to the
// category maximum.
func buildCategoryResult(category domain.Category, max int, items []domain.HistoryItem) domain.CategoryResult {
	total := 0
	for _, item := range items {
		total += item.Points
	}
	return domain.CategoryResult{
		Category: category,
		Total:    clampPoints(total, max),
		Items:    items,
	}
}

// sanitize maps NaN and negative inputs onto the "no data" sentinel
func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clampPoints(points, max int) int {
	if points < 0 {
		return 0
	}
	if points > max {
		return max
	}
	return points
}

// Sub-metric scorers. Each maps a raw value to points through a monotonic
// threshold table and produces the rationale shown in the explanation feed.

func scoreRestingHeartRate(rhr float64) domain.HistoryItem {
	rhr = sanitize(rhr)
	var points int
	var tier string
	switch {
	case rhr == 0:
		points, tier = 0, "no data recorded"
	case rhr <= 50:
		points, tier = 10, "athlete-level cardiovascular efficiency"
	case rhr <= 55:
		points, tier = 9, "excellent cardiovascular efficiency"
	case rhr <= 60:
		points, tier = 8, "very good cardiovascular efficiency"
	case rhr <= 65:
		points, tier = 6, "good cardiovascular efficiency"
	case rhr <= 70:
		points, tier = 5, "average cardiovascular efficiency"
	case rhr <= 75:
		points, tier = 3, "below-average cardiovascular efficiency"
	case rhr <= 80:
		points, tier = 2, "elevated resting heart rate"
	default:
		points, tier = 1, "high resting heart rate"
	}
	return domain.HistoryItem{
		Name:      "Resting Heart Rate",
		Category:  domain.CARDIOVASCULAR,
		Points:    clampPoints(points, domain.MaxRestingHeartRatePoints),
		MaxPoints: domain.MaxRestingHeartRatePoints,
		Rationale: fmt.Sprintf("Resting heart rate of %.0f bpm: %s", rhr, tier),
	}
}

func scoreHeartRateVariability(hrv float64) domain.HistoryItem {
	hrv = sanitize(hrv)
	var points int
	var tier string
	switch {
	case hrv == 0:
		points, tier = 0, "no data recorded"
	case hrv >= 70:
		points, tier = 10, "excellent autonomic recovery capacity"
	case hrv >= 60:
		points, tier = 8, "very good autonomic recovery capacity"
	case hrv >= 50:
		points, tier = 7, "good autonomic recovery capacity"
	case hrv >= 40:
		points, tier = 5, "moderate autonomic recovery capacity"
	case hrv >= 30:
		points, tier = 3, "reduced autonomic recovery capacity"
	case hrv >= 20:
		points, tier = 2, "low heart rate variability"
	default:
		points, tier = 1, "very low heart rate variability"
	}
	return domain.HistoryItem{
		Name:      "Heart Rate Variability",
		Category:  domain.CARDIOVASCULAR,
		Points:    clampPoints(points, domain.MaxHeartRateVariabilityPoints),
		MaxPoints: domain.MaxHeartRateVariabilityPoints,
		Rationale: fmt.Sprintf("HRV of %.0f ms: %s", hrv, tier),
	}
}

func scoreVO2Max(vo2max float64) domain.HistoryItem {
	vo2max = sanitize(vo2max)
	var points int
	var tier string
	switch {
	case vo2max == 0:
		points, tier = 0, "no data recorded"
	case vo2max >= 50:
		points, tier = 10, "superior aerobic capacity"
	case vo2max >= 45:
		points, tier = 9, "excellent aerobic capacity"
	case vo2max >= 40:
		points, tier = 7, "good aerobic capacity"
	case vo2max >= 35:
		points, tier = 5, "fair aerobic capacity"
	case vo2max >= 30:
		points, tier = 3, "below-average aerobic capacity"
	case vo2max >= 25:
		points, tier = 2, "low aerobic capacity"
	default:
		points, tier = 1, "very low aerobic capacity"
	}
	return domain.HistoryItem{
		Name:      "VO2 Max",
		Category:  domain.CARDIOVASCULAR,
		Points:    clampPoints(points, domain.MaxVO2MaxPoints),
		MaxPoints: domain.MaxVO2MaxPoints,
		Rationale: fmt.Sprintf("VO2 max of %.1f ml/kg/min: %s", vo2max, tier),
	}
}

func scoreDeepSleep(pct float64) domain.HistoryItem {
	pct = sanitize(pct)
	var points int
	var tier string
	switch {
	case pct == 0:
		points, tier = 0, "no data recorded"
	case pct >= 20:
		points, tier = 15, "optimal physical restoration"
	case pct >= 17:
		points, tier = 13, "very good physical restoration"
	case pct >= 15:
		points, tier = 11, "good physical restoration"
	case pct >= 13:
		points, tier = 9, "adequate physical restoration"
	case pct >= 10:
		points, tier = 6, "below the recommended deep sleep share"
	case pct >= 7:
		points, tier = 3, "insufficient deep sleep"
	default:
		points, tier = 1, "very little deep sleep"
	}
	return domain.HistoryItem{
		Name:      "Deep Sleep",
		Category:  domain.RECOVERY,
		Points:    clampPoints(points, domain.MaxDeepSleepPoints),
		MaxPoints: domain.MaxDeepSleepPoints,
		Rationale: fmt.Sprintf("Deep sleep at %.1f%% of total sleep: %s", pct, tier),
	}
}

func scoreREMSleep(pct float64) domain.HistoryItem {
	pct = sanitize(pct)
	var points int
	var tier string
	switch {
	case pct == 0:
		points, tier = 0, "no data recorded"
	case pct >= 22:
		points, tier = 12, "optimal mental recovery"
	case pct >= 20:
		points, tier = 10, "very good mental recovery"
	case pct >= 18:
		points, tier = 8, "good mental recovery"
	case pct >= 15:
		points, tier = 6, "adequate mental recovery"
	case pct >= 12:
		points, tier = 4, "below the recommended REM share"
	case pct >= 8:
		points, tier = 2, "insufficient REM sleep"
	default:
		points, tier = 1, "very little REM sleep"
	}
	return domain.HistoryItem{
		Name:      "REM Sleep",
		Category:  domain.RECOVERY,
		Points:    clampPoints(points, domain.MaxREMSleepPoints),
		MaxPoints: domain.MaxREMSleepPoints,
		Rationale: fmt.Sprintf("REM sleep at %.1f%% of total sleep: %s", pct, tier),
	}
}

func scoreSleepConsistency(consistency float64) domain.HistoryItem {
	consistency = sanitize(consistency)
	if consistency > 100 {
		consistency = 100
	}
	// Already a 0-100 score, so it scales linearly onto the point range.
	points := int(math.Round(consistency * domain.MaxSleepConsistencyPoints / 100))
	rationale := fmt.Sprintf("Sleep consistency score of %.0f/100", consistency)
	if consistency == 0 {
		rationale = "Sleep consistency: no data recorded"
	}
	return domain.HistoryItem{
		Name:      "Sleep Consistency",
		Category:  domain.RECOVERY,
		Points:    clampPoints(points, domain.MaxSleepConsistencyPoints),
		MaxPoints: domain.MaxSleepConsistencyPoints,
		Rationale: rationale,
	}
}

func scoreTrainingTime(dailyMinutes float64) domain.HistoryItem {
	dailyMinutes = sanitize(dailyMinutes)
	var points int
	var tier string
	switch {
	case dailyMinutes == 0:
		points, tier = 0, "no training recorded"
	case dailyMinutes >= 60:
		points, tier = 12, "high training volume"
	case dailyMinutes >= 45:
		points, tier = 11, "very good training volume"
	case dailyMinutes >= 30:
		points, tier = 9, "good training volume"
	case dailyMinutes >= 21:
		points, tier = 7, "meets the recommended weekly activity guideline"
	case dailyMinutes >= 15:
		points, tier = 5, "moderate training volume"
	case dailyMinutes >= 10:
		points, tier = 3, "light training volume"
	default:
		points, tier = 1, "minimal training volume"
	}
	return domain.HistoryItem{
		Name:      "Training Time",
		Category:  domain.ACTIVITY,
		Points:    clampPoints(points, domain.MaxTrainingTimePoints),
		MaxPoints: domain.MaxTrainingTimePoints,
		Rationale: fmt.Sprintf("Daily average of %.0f training minutes: %s", dailyMinutes, tier),
	}
}

func scoreTrainingIntensity(intensity float64) domain.HistoryItem {
	intensity = sanitize(intensity)
	if intensity > 100 {
		intensity = 100
	}
	points := int(math.Round(intensity * domain.MaxTrainingIntensityPoints / 100))
	rationale := fmt.Sprintf("Normalized training intensity of %.0f/100", intensity)
	if intensity == 0 {
		rationale = "Training intensity: no data recorded"
	}
	return domain.HistoryItem{
		Name:      "Training Intensity",
		Category:  domain.ACTIVITY,
		Points:    clampPoints(points, domain.MaxTrainingIntensityPoints),
		MaxPoints: domain.MaxTrainingIntensityPoints,
		Rationale: rationale,
	}
}

func scoreDailySteps(steps float64) domain.HistoryItem {
	steps = sanitize(steps)
	var points int
	var tier string
	switch {
	case steps == 0:
		points, tier = 0, "no data recorded"
	case steps >= 12000:
		points, tier = 6, "highly active day"
	case steps >= 10000:
		points, tier = 5, "meets the common daily step goal"
	case steps >= 8000:
		points, tier = 4, "active day"
	case steps >= 6000:
		points, tier = 3, "moderately active day"
	case steps >= 4000:
		points, tier = 2, "lightly active day"
	default:
		points, tier = 1, "largely sedentary day"
	}
	return domain.HistoryItem{
		Name:      "Daily Steps",
		Category:  domain.ACTIVITY,
		Points:    clampPoints(points, domain.MaxDailyStepsPoints),
		MaxPoints: domain.MaxDailyStepsPoints,
		Rationale: fmt.Sprintf("%.0f steps: %s", steps, tier),
	}
}
