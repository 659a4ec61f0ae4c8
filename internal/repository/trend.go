// Package repository provides read-side queries over the day-record table
// for trend aggregation. Writes go through the history store; this package
// only groups and loads stored samples so the service layer can re-score
// them per month.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/fitness-score-server/internal/domain"
)

// TrendRepository reads day records grouped by calendar month.
type TrendRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewTrendRepository creates a new trend repository.
func NewTrendRepository(db *pgxpool.Pool, logger *logrus.Logger) *TrendRepository {
	return &TrendRepository{
		db:  db,
		log: logger,
	}
}

// ListMonths returns the most recent months (YYYY-MM) that have day records,
// newest first, up to limit.
func (r *TrendRepository) ListMonths(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT LEFT(date, 7) AS month
		FROM day_records
		GROUP BY LEFT(date, 7)
		ORDER BY month DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.WithError(err).Error("Failed to list months")
		return nil, fmt.Errorf("listing months: %w", err)
	}
	defer rows.Close()

	months := make([]string, 0, limit)
	for rows.Next() {
		var month string
		if err := rows.Scan(&month); err != nil {
			return nil, fmt.Errorf("scanning month: %w", err)
		}
		months = append(months, month)
	}

	return months, rows.Err()
}

// ListDaysForMonth returns all day records in a month (YYYY-MM), ordered by date.
func (r *TrendRepository) ListDaysForMonth(ctx context.Context, month string) ([]domain.DayRecord, error) {
	query := `
		SELECT date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions
		FROM day_records
		WHERE LEFT(date, 7) = $1
		ORDER BY date ASC`

	rows, err := r.db.Query(ctx, query, month)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"month": month,
			"error": err,
		}).Error("Failed to list days for month")
		return nil, fmt.Errorf("listing days for month %s: %w", month, err)
	}
	defer rows.Close()

	days := make([]domain.DayRecord, 0)
	for rows.Next() {
		var day domain.DayRecord
		var rhrSamples, hrvSamples, sleepSamples, trainingSessions []byte

		err := rows.Scan(
			&day.Date, &day.Steps, &day.VO2Max, &day.SleepConsistency,
			&rhrSamples, &hrvSamples, &sleepSamples, &trainingSessions,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning day record: %w", err)
		}

		if err := json.Unmarshal(rhrSamples, &day.RestingHeartRateSamples); err != nil {
			return nil, fmt.Errorf("decoding heart rate samples: %w", err)
		}
		if err := json.Unmarshal(hrvSamples, &day.HRVSamples); err != nil {
			return nil, fmt.Errorf("decoding HRV samples: %w", err)
		}
		if err := json.Unmarshal(sleepSamples, &day.SleepSamples); err != nil {
			return nil, fmt.Errorf("decoding sleep samples: %w", err)
		}
		if err := json.Unmarshal(trainingSessions, &day.TrainingSessions); err != nil {
			return nil, fmt.Errorf("decoding training sessions: %w", err)
		}

		days = append(days, day)
	}

	return days, rows.Err()
}
