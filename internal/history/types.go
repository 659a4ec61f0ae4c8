// Package history stores raw per-day health samples. Computed scores are
// never persisted; trend endpoints re-score stored samples with the current
// rules on every read.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/fitness-score-server/internal/domain"
)

// ErrDayNotFound is returned when no record exists for the requested date.
var ErrDayNotFound = errors.New("day record not found")

// ErrInvalidDate is returned when a date key is missing or malformed.
var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

// Store is the interface for day-record storage backends.
type Store interface {
	// SaveDay stores or replaces the record for its date.
	SaveDay(ctx context.Context, day *domain.DayRecord) error

	// GetDay retrieves the record for a date, or ErrDayNotFound.
	GetDay(ctx context.Context, date string) (*domain.DayRecord, error)

	// ListRange returns records with from <= date <= to, ordered by date.
	ListRange(ctx context.Context, from, to string) ([]domain.DayRecord, error)

	// Close releases the underlying database resources.
	Close() error
}

// validateDate checks the YYYY-MM-DD date key used by every backend.
func validateDate(date string) error {
	if date == "" {
		return ErrInvalidDate
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
