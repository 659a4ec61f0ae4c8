package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitnessLevelString(t *testing.T) {
	assert.Equal(t, "EXCELLENT", EXCELLENT.String())
	assert.Equal(t, "POOR", POOR.String())
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "CARDIOVASCULAR", CARDIOVASCULAR.String())
	assert.Equal(t, "BONUS", BONUS.String())
}

func TestCategoryMaximaSumToScoreCeiling(t *testing.T) {
	assert.Equal(t, 100, MaxCardiovascularPoints+MaxRecoveryPoints+MaxActivityPoints+MaxBonusPoints)

	assert.Equal(t, MaxCardiovascularPoints,
		MaxRestingHeartRatePoints+MaxHeartRateVariabilityPoints+MaxVO2MaxPoints)
	assert.Equal(t, MaxRecoveryPoints,
		MaxDeepSleepPoints+MaxREMSleepPoints+MaxSleepConsistencyPoints)
	assert.Equal(t, MaxActivityPoints,
		MaxTrainingTimePoints+MaxTrainingIntensityPoints+MaxDailyStepsPoints)
}

func TestAPIError(t *testing.T) {
	apiErr := NewAPIError(ErrInvalidInput, "bad payload", "field x", "req-1")

	assert.Equal(t, "INVALID_INPUT: bad payload", apiErr.Error())
	assert.Equal(t, "req-1", apiErr.RequestID)
	assert.False(t, apiErr.Timestamp.IsZero())
}

func TestHealthMetricsJSONRoundTrip(t *testing.T) {
	metrics := HealthMetrics{
		RestingHeartRate:     55,
		HeartRateVariability: 60,
		MonthlyTrainingTime:  1200,
	}

	encoded, err := json.Marshal(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"resting_heart_rate":55`)
	assert.Contains(t, string(encoded), `"monthly_training_time":1200`)

	var decoded HealthMetrics
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, metrics, decoded)
}
