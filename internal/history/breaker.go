package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/fitness-score-server/internal/domain"
)

// BreakerStore wraps a Store with a circuit breaker so that a failing
// database backend sheds load instead of piling up slow requests.
type BreakerStore struct {
	inner   Store
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerStore creates a circuit-breaker wrapper around the given store.
func NewBreakerStore(inner Store, logger *logrus.Logger) *BreakerStore {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "history-store",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// Missing days and bad input are expected outcomes, not backend failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrDayNotFound) || errors.Is(err, ErrInvalidDate)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("History store circuit breaker state changed")
		},
	})

	return &BreakerStore{
		inner:   inner,
		breaker: breaker,
	}
}

// SaveDay stores a record through the circuit breaker.
func (b *BreakerStore) SaveDay(ctx context.Context, day *domain.DayRecord) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, b.inner.SaveDay(ctx, day)
	})
	return b.translate(err)
}

// GetDay retrieves a record through the circuit breaker.
func (b *BreakerStore) GetDay(ctx context.Context, date string) (*domain.DayRecord, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.GetDay(ctx, date)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return result.(*domain.DayRecord), nil
}

// ListRange retrieves a range of records through the circuit breaker.
func (b *BreakerStore) ListRange(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.inner.ListRange(ctx, from, to)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return result.([]domain.DayRecord), nil
}

// Close closes the underlying store.
func (b *BreakerStore) Close() error {
	return b.inner.Close()
}

func (b *BreakerStore) translate(err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("history store unavailable (circuit breaker open): %w", err)
	}
	return err
}
