package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/fitness-score-server/internal/domain"
)

// PostgresStore implements the Store interface using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a day-record store backed by an existing connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// NewPostgresStoreFromURL opens a PostgreSQL connection and verifies it.
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveDay stores or replaces the record for its date.
func (s *PostgresStore) SaveDay(ctx context.Context, day *domain.DayRecord) error {
	if err := validateDate(day.Date); err != nil {
		return err
	}

	rhr, hrv, sleep, training, err := encodeDay(day)
	if err != nil {
		return fmt.Errorf("failed to encode day record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO day_records (
			date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (date) DO UPDATE SET
			steps = EXCLUDED.steps,
			vo2_max = EXCLUDED.vo2_max,
			sleep_consistency = EXCLUDED.sleep_consistency,
			rhr_samples = EXCLUDED.rhr_samples,
			hrv_samples = EXCLUDED.hrv_samples,
			sleep_samples = EXCLUDED.sleep_samples,
			training_sessions = EXCLUDED.training_sessions,
			updated_at = NOW()
	`,
		day.Date, day.Steps, day.VO2Max, day.SleepConsistency,
		rhr, hrv, sleep, training,
	)
	if err != nil {
		return fmt.Errorf("failed to save day record: %w", err)
	}

	return nil
}

// GetDay retrieves the record for a date.
func (s *PostgresStore) GetDay(ctx context.Context, date string) (*domain.DayRecord, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT date, steps, vo2_max, sleep_consistency,
			rhr_samples, hrv_samples, sleep_samples, training_sessions
		FROM day_records WHERE date = $1
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
func (s *PostgresStore) ListRange(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
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
		WHERE date >= $1 AND date <= $2
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
