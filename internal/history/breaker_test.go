package history

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitness-score-server/internal/domain"
)

type fakeStore struct {
	err  error
	days map[string]*domain.DayRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{days: make(map[string]*domain.DayRecord)}
}

func (f *fakeStore) SaveDay(ctx context.Context, day *domain.DayRecord) error {
	if f.err != nil {
		return f.err
	}
	f.days[day.Date] = day
	return nil
}

func (f *fakeStore) GetDay(ctx context.Context, date string) (*domain.DayRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	day, ok := f.days[date]
	if !ok {
		return nil, ErrDayNotFound
	}
	return day, nil
}

func (f *fakeStore) ListRange(ctx context.Context, from, to string) ([]domain.DayRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.DayRecord{}, nil
}

func (f *fakeStore) Close() error { return nil }

func newBreakerTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestBreakerStorePassesThrough(t *testing.T) {
	inner := newFakeStore()
	store := NewBreakerStore(inner, newBreakerTestLogger())
	ctx := context.Background()

	require.NoError(t, store.SaveDay(ctx, sampleDay("2025-03-10")))

	day, err := store.GetDay(ctx, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", day.Date)

	days, err := store.ListRange(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestBreakerStoreNotFoundDoesNotTrip(t *testing.T) {
	inner := newFakeStore()
	store := NewBreakerStore(inner, newBreakerTestLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := store.GetDay(ctx, "2025-03-10")
		assert.ErrorIs(t, err, ErrDayNotFound)
	}

	// Lookups for missing days never open the breaker.
	require.NoError(t, store.SaveDay(ctx, sampleDay("2025-03-10")))
}

func TestBreakerStoreOpensAfterBackendFailures(t *testing.T) {
	inner := newFakeStore()
	inner.err = errors.New("connection refused")
	store := NewBreakerStore(inner, newBreakerTestLogger())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		store.SaveDay(ctx, sampleDay("2025-03-10"))
	}

	err := store.SaveDay(ctx, sampleDay("2025-03-10"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")
}
