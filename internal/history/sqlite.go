package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fitness-score-server/internal/domain"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite day-record store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanDay scans a row into a DayRecord, decoding the JSON sample columns.
func scanDay(s scanner) (*domain.DayRecord, error) {
	day := &domain.DayRecord{}
	var rhrSamples, hrvSamples, sleepSamples, trainingSessions string

	err := s.Scan(
		&day.Date, &day.Steps, &day.VO2Max, &day.SleepConsistency,
		&rhrSamples, &hrvSamples, &sleepSamples, &trainingSessions,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(rhrSamples), &day.RestingHeartRateSamples); err != nil {
		return nil, fmt.Errorf("failed to decode heart rate samples: %w", err)
	}
	if err := json.Unmarshal([]byte(hrvSamples), &day.HRVSamples); err != nil {
		return nil, fmt.Errorf("failed to decode HRV samples: %w", err)
	}
	if err := json.Unmarshal([]byte(sleepSamples), &day.SleepSamples); err != nil {
		return nil, fmt.Errorf("failed to decode sleep samples: %w", err)
	}
	if err := json.Unmarshal([]byte(trainingSessions), &day.TrainingSessions); err != nil {
		return nil, fmt.Errorf("failed to decode training sessions: %w", err)
	}

	return day, nil
}

// encodeDay serializes the sample columns for storage.
func encodeDay(day *domain.DayRecord) (rhr, hrv, sleep, training string, err error) {
	encode := func(v interface{}) (string, error) {
		if v == nil {
			return "[]", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if rhr, err = encode(nonNilFloats(day.RestingHeartRateSamples)); err != nil {
		return
	}
	if hrv, err = encode(nonNilFloats(day.HRVSamples)); err != nil {
		return
	}
	if sleep, err = encode(nonNilSleep(day.SleepSamples)); err != nil {
		return
	}
	training, err = encode(nonNilSessions(day.TrainingSessions))
	return
}

func nonNilFloats(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func nonNilSleep(v []domain.SleepSample) []domain.SleepSample {
	if v == nil {
		return []domain.SleepSample{}
	}
	return v
}

func nonNilSessions(v []domain.TrainingSession) []domain.TrainingSession {
	if v == nil {
		return []domain.TrainingSession{}
	}
	return v
}

// createSchema creates the database tables and indexes.
func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS day_records (
		date TEXT PRIMARY KEY,
		steps REAL NOT NULL DEFAULT 0,
		vo2_max REAL NOT NULL DEFAULT 0,
		sleep_consistency REAL NOT NULL DEFAULT 0,
		rhr_samples TEXT NOT NULL DEFAULT '[]',
		hrv_samples TEXT NOT NULL DEFAULT '[]',
		sleep_samples TEXT NOT NULL DEFAULT '[]',
		training_sessions TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_day_records_date ON day_records(date);
	`

	_, err := db.Exec(schema)
	return err
}

// SaveDay stores or replaces the record for its date.
func (s *SQLiteStore) SaveDay(ctx context.Context, day *domain.DayRecord) error {
	if err := validateDate(day.Date); err != nil {
		return err
	}

	rhr, hrv, sleep, training, err := encodeDay(day)
	if err != nil {
		return fmt.Errorf("failed to encode day record: %w", err)
	}

	now := time.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_records (
			date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			steps = excluded.steps,
			vo2_max = excluded.vo2_max,
			sleep_consistency = excluded.sleep_consistency,
			rhr_samples = excluded.rhr_samples,
			hrv_samples = excluded.hrv_samples,
			sleep_samples = excluded.sleep_samples,
			training_sessions = excluded.training_sessions,
			updated_at = excluded.updated_at
	`,
		day.Date, day.Steps, day.VO2Max, day.SleepConsistency,
		rhr, hrv, sleep, training,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save day record: %w", err)
	}

	return nil
}

// GetDay retrieves the record for a date.
func (s *SQLiteStore) GetDay(ctx context.Context, date string) (*domain.DayRecord, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions
		FROM day_records WHERE date = ?
	`, date)

	day, err := scanDay(row)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day record: %w", err)
	}

	return day, nil
}

// ListRange returns records within the inclusive date range, ordered by date.
func (s *SQLiteStore) ListRange(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
	if err := validateDate(from); err != nil {
		return nil, err
	}
	if err := validateDate(to); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions
		FROM day_records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	days := make([]domain.DayRecord, 0)
	for rows.Next() {
		day, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		days = append(days, *day)
	}

	return days, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
