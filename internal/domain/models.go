package domain

// Core Enums and Types

// FitnessLevel represents the ordinal classification of a total fitness score
type FitnessLevel string

const (
	POOR      FitnessLevel = "POOR"
	FAIR      FitnessLevel = "FAIR"
	GOOD      FitnessLevel = "GOOD"
	VERY_GOOD FitnessLevel = "VERY_GOOD"
	EXCELLENT FitnessLevel = "EXCELLENT"
)

// String returns the string representation of the fitness level
func (l FitnessLevel) String() string {
	return string(l)
}

// Category represents one of the weighted scoring categories
type Category string

const (
	CARDIOVASCULAR Category = "CARDIOVASCULAR"
	RECOVERY       Category = "RECOVERY"
	ACTIVITY       Category = "ACTIVITY"
	BONUS          Category = "BONUS"
)

// String returns the string representation of the category
func (c Category) String() string {
	return string(c)
}

// Category point maxima. Category totals are clamped to these regardless of
// input magnitude.
const (
	MaxCardiovascularPoints = 30
	MaxRecoveryPoints       = 35
	MaxActivityPoints       = 30
	MaxBonusPoints          = 5

	MaxRestingHeartRatePoints     = 10
	MaxHeartRateVariabilityPoints = 10
	MaxVO2MaxPoints               = 10
	MaxDeepSleepPoints            = 15
	MaxREMSleepPoints             = 12
	MaxSleepConsistencyPoints     = 8
	MaxTrainingTimePoints         = 12
	MaxTrainingIntensityPoints    = 12
	MaxDailyStepsPoints           = 6
)

// TrainingDaysPerMonth is the divisor used to convert a monthly training
// total into a per-day average before activity scoring.
const TrainingDaysPerMonth = 30

// Input Models

// HealthMetrics is the immutable per-computation input record. All fields are
// non-negative; a zero value means "no data" and degrades to zero points for
// the affected sub-metric rather than failing.
type HealthMetrics struct {
	RestingHeartRate     float64 `json:"resting_heart_rate"`     // bpm
	HeartRateVariability float64 `json:"heart_rate_variability"` // ms
	VO2Max               float64 `json:"vo2_max"`                // ml/kg/min
	DeepSleepPercentage  float64 `json:"deep_sleep_percentage"`
	REMSleepPercentage   float64 `json:"rem_sleep_percentage"`
	SleepConsistency     float64 `json:"sleep_consistency"`     // 0-100, lower variance = higher
	MonthlyTrainingTime  float64 `json:"monthly_training_time"` // minutes per month
	TrainingIntensity    float64 `json:"training_intensity"`    // 0-100 normalized
	DailySteps           float64 `json:"daily_steps"`
}

// Historical Input Models

// SleepStage identifies a sleep stage in a raw sleep sample
type SleepStage string

const (
	STAGE_DEEP  SleepStage = "DEEP"
	STAGE_REM   SleepStage = "REM"
	STAGE_CORE  SleepStage = "CORE"
	STAGE_AWAKE SleepStage = "AWAKE"
)

// SleepSample is a raw per-stage sleep duration for one day
type SleepSample struct {
	Stage   SleepStage `json:"stage"`
	Minutes float64    `json:"minutes"`
}

// TrainingSession is a single raw workout record for one day
type TrainingSession struct {
	Minutes   float64 `json:"minutes"`
	Intensity float64 `json:"intensity"` // 0-100 normalized
}

// DayRecord carries one day's raw per-metric samples. The aggregators reduce
// each DayRecord to a HealthMetrics using the same semantics as live scoring
// so historical and live scores are comparable.
type DayRecord struct {
	Date                    string            `json:"date"` // YYYY-MM-DD
	Steps                   float64           `json:"steps"`
	RestingHeartRateSamples []float64         `json:"resting_heart_rate_samples"` // bpm
	HRVSamples              []float64         `json:"hrv_samples"`                // ms
	VO2Max                  float64           `json:"vo2_max"`
	SleepConsistency        float64           `json:"sleep_consistency"`
	SleepSamples            []SleepSample     `json:"sleep_samples"`
	TrainingSessions        []TrainingSession `json:"training_sessions"`
}

// Intermediate Models

// HistoryItem pairs a sub-metric or bonus result with a human-readable
// rationale. The flattened sequence of history items is the stable
// explanation feed for audit and detail views.
type HistoryItem struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Points    int      `json:"points"`
	MaxPoints int      `json:"max_points"`
	Rationale string   `json:"rationale"`
}

// CategoryResult holds the clamped point total for one category together with
// one explanatory item per sub-metric, in calculation order.
type CategoryResult struct {
	Category Category      `json:"category"`
	Total    int           `json:"total"`
	Items    []HistoryItem `json:"items"`
}

// BonusBreakdown carries the structured per-category qualification behind the
// consistency bonus. The orchestrator reads these fields directly; the text
// explanation is generated from them, never the reverse.
type BonusBreakdown struct {
	CardiovascularPercent int      `json:"cardiovascular_percent"`
	RecoveryPercent       int      `json:"recovery_percent"`
	ActivityPercent       int      `json:"activity_percent"`
	CardiovascularExcellent bool   `json:"cardiovascular_excellent"`
	RecoveryExcellent       bool   `json:"recovery_excellent"`
	ActivityExcellent       bool   `json:"activity_excellent"`
	ExcellentCategories     []string `json:"excellent_categories"`
}

// BonusResult is the outcome of the consistency bonus rule
type BonusResult struct {
	Points      int            `json:"points"` // one of 0, 1, 3, 5
	Breakdown   BonusBreakdown `json:"breakdown"`
	Explanation string         `json:"explanation"`
}

// Output Models

// FitnessScoreResult is the immutable output of a full score computation.
// TotalScore always equals the exact sum of the four point components.
type FitnessScoreResult struct {
	Date                 string         `json:"date,omitempty"`
	TotalScore           int            `json:"total_score"`
	CardiovascularPoints int            `json:"cardiovascular_points"`
	RecoveryPoints       int            `json:"recovery_points"`
	ActivityPoints       int            `json:"activity_points"`
	BonusPoints          int            `json:"bonus_points"`
	FitnessLevel         FitnessLevel   `json:"fitness_level"`
	BonusBreakdown       BonusBreakdown `json:"bonus_breakdown"`
	HistoryItems         []HistoryItem  `json:"history_items"`
}

// LevelBand describes the inclusive score range of one fitness level.
type LevelBand struct {
	Level    FitnessLevel `json:"level"`
	MinScore int          `json:"min_score"`
	MaxScore int          `json:"max_score"`
}

// MonthlyAverage is the arithmetic mean of daily scores across a period.
// The zero value represents an empty period.
type MonthlyAverage struct {
	Days                 int          `json:"days"`
	TotalScore           float64      `json:"total_score"`
	CardiovascularPoints float64      `json:"cardiovascular_points"`
	RecoveryPoints       float64      `json:"recovery_points"`
	ActivityPoints       float64      `json:"activity_points"`
	BonusPoints          float64      `json:"bonus_points"`
	FitnessLevel         FitnessLevel `json:"fitness_level"`
}

// Legacy Models

// LegacyDayMetrics is the older pre-aggregated per-day shape still produced
// by earlier exports. Field names follow the legacy contract.
type LegacyDayMetrics struct {
	Date             string  `json:"date"`
	RHR              float64 `json:"rhr"`
	HRV              float64 `json:"hrv"`
	VO2              float64 `json:"vo2"`
	DeepSleep        float64 `json:"deepSleep"`
	RemSleep         float64 `json:"remSleep"`
	SleepRegularity  float64 `json:"sleepRegularity"`
	TrainingMinutes  float64 `json:"trainingMinutes"` // monthly total
	TrainingIntensity float64 `json:"trainingIntensity"`
	Steps            float64 `json:"steps"`
}

// LegacyHistoryItem is a scored legacy day, the shape consumed by older
// trend displays.
type LegacyHistoryItem struct {
	Date   string             `json:"date"`
	Result FitnessScoreResult `json:"result"`
}
