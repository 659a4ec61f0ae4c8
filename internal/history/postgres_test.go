package history

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresStore(db), mock
}

func dayColumns() []string {
	return []string{
		"date", "steps", "vo2_max", "sleep_consistency",
		"rhr_samples", "hrv_samples", "sleep_samples", "training_sessions",
	}
}

func TestPostgresStoreSaveDay(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectExec("INSERT INTO day_records").
		WithArgs(
			"2025-03-10", float64(8500), float64(42), float64(80),
			`[62,58,60]`, `[48,52]`,
			`[{"stage":"DEEP","minutes":70},{"stage":"REM","minutes":85},{"stage":"CORE","minutes":230},{"stage":"AWAKE","minutes":15}]`,
			`[{"minutes":45,"intensity":70}]`,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveDay(context.Background(), sampleDay("2025-03-10"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSaveDayInvalidDate(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	err := store.SaveDay(context.Background(), sampleDay("10.03.2025"))
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetDay(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	rows := sqlmock.NewRows(dayColumns()).
		AddRow("2025-03-10", 8500.0, 42.0, 80.0, `[62,58,60]`, `[48,52]`, `[]`, `[]`)
	mock.ExpectQuery("SELECT (.+) FROM day_records WHERE date").
		WithArgs("2025-03-10").
		WillReturnRows(rows)

	day, err := store.GetDay(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", day.Date)
	assert.Equal(t, float64(8500), day.Steps)
	assert.Equal(t, []float64{62, 58, 60}, day.RestingHeartRateSamples)
	assert.Empty(t, day.SleepSamples)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreGetDayNotFound(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery("SELECT (.+) FROM day_records WHERE date").
		WithArgs("2025-03-10").
		WillReturnRows(sqlmock.NewRows(dayColumns()))

	_, err := store.GetDay(context.Background(), "2025-03-10")
	assert.ErrorIs(t, err, ErrDayNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreListRange(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	rows := sqlmock.NewRows(dayColumns()).
		AddRow("2025-03-10", 8500.0, 42.0, 80.0, `[]`, `[]`, `[]`, `[]`).
		AddRow("2025-03-11", 9200.0, 42.0, 75.0, `[]`, `[]`, `[]`, `[]`)
	mock.ExpectQuery("SELECT (.+) FROM day_records").
		WithArgs("2025-03-01", "2025-03-31").
		WillReturnRows(rows)

	days, err := store.ListRange(context.Background(), "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-10", days[0].Date)
	assert.Equal(t, "2025-03-11", days[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}
