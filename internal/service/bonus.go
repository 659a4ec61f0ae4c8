package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/fitness-score-server/internal/domain"
)

// excellentThreshold is the fraction of a category's maximum that qualifies
// it for the consistency bonus.
const excellentThreshold = 0.75

// bonusPointsByCount maps the number of qualifying categories onto bonus
// points.
var bonusPointsByCount = map[int]int{0: 0, 1: 1, 2: 3, 3: 5}

// CalculateBonusPoints awards the consistency bonus for reaching at least 75%
// of the maximum in multiple categories simultaneously. Qualification is
// decided here once, carried as structured per-category flags, and the text
// explanation is generated from those flags.
func CalculateBonusPoints(cardioTotal, recoveryTotal, activityTotal int) domain.BonusResult {
	breakdown := domain.BonusBreakdown{
		CardiovascularPercent:   percentOfMax(cardioTotal, domain.MaxCardiovascularPoints),
		RecoveryPercent:         percentOfMax(recoveryTotal, domain.MaxRecoveryPoints),
		ActivityPercent:         percentOfMax(activityTotal, domain.MaxActivityPoints),
		CardiovascularExcellent: qualifies(cardioTotal, domain.MaxCardiovascularPoints),
		RecoveryExcellent:       qualifies(recoveryTotal, domain.MaxRecoveryPoints),
		ActivityExcellent:       qualifies(activityTotal, domain.MaxActivityPoints),
	}

	names := make([]string, 0, 3)
	if breakdown.CardiovascularExcellent {
		names = append(names, "Cardiovascular")
	}
	if breakdown.RecoveryExcellent {
		names = append(names, "Recovery")
	}
	if breakdown.ActivityExcellent {
		names = append(names, "Activity")
	}
	breakdown.ExcellentCategories = names

	points := bonusPointsByCount[len(names)]

	return domain.BonusResult{
		Points:      points,
		Breakdown:   breakdown,
		Explanation: bonusExplanation(names, points),
	}
}

// DetermineFitnessLevel buckets a 0-100 total score into an ordinal fitness
// level. Boundaries are contiguous and cover the full range.
func DetermineFitnessLevel(totalScore int) domain.FitnessLevel {
	switch {
	case totalScore >= 90:
		return domain.EXCELLENT
	case totalScore >= 75:
		return domain.VERY_GOOD
	case totalScore >= 60:
		return domain.GOOD
	case totalScore >= 40:
		return domain.FAIR
	default:
		return domain.POOR
	}
}

// LevelBands lists the score ranges behind DetermineFitnessLevel, in
// ascending order.
func LevelBands() []domain.LevelBand {
	return []domain.LevelBand{
		{Level: domain.POOR, MinScore: 0, MaxScore: 39},
		{Level: domain.FAIR, MinScore: 40, MaxScore: 59},
		{Level: domain.GOOD, MinScore: 60, MaxScore: 74},
		{Level: domain.VERY_GOOD, MinScore: 75, MaxScore: 89},
		{Level: domain.EXCELLENT, MinScore: 90, MaxScore: 100},
	}
}

func percentOfMax(total, max int) int {
	return int(math.Round(float64(total) / float64(max) * 100))
}

func qualifies(total, max int) bool {
	return float64(total) >= excellentThreshold*float64(max)
}

func bonusExplanation(names []string, points int) string {
	switch len(names) {
	case 0:
		return "No category reached 75% of its maximum; no consistency bonus awarded"
	case 3:
		return fmt.Sprintf("All three categories are excellent (at or above 75%% of maximum): %s. %d bonus points awarded",
			strings.Join(names, ", "), points)
	default:
		return fmt.Sprintf("%s reached at least 75%% of maximum. %d bonus point(s) awarded",
			strings.Join(names, " and "), points)
	}
}
