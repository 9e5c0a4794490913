package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockSequenceRepository creates a GormSequenceRepository with a mocked SQL connection
func newMockSequenceRepository(t *testing.T) (*GormSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceRepository(gormDB), mock, mockDB
}

func TestGormSequenceRepository_Next(t *testing.T) {
	t.Run("inserts the first counter for a fresh prefix and year", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`(?s)INSERT INTO number_sequences.*ON CONFLICT \(prefix, year\).*RETURNING counter`).
			WithArgs("WO", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(1))

		counter, err := repo.Next(context.Background(), "WO", 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), counter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bumps an existing counter", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`(?s)INSERT INTO number_sequences.*ON CONFLICT \(prefix, year\).*RETURNING counter`).
			WithArgs("CA", 2026).
			WillReturnRows(sqlmock.NewRows([]string{"counter"}).AddRow(42))

		counter, err := repo.Next(context.Background(), "CA", 2026)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), counter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates a store failure", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`INSERT INTO number_sequences`).
			WithArgs("WO", 2026).
			WillReturnError(errors.New("connection reset"))

		counter, err := repo.Next(context.Background(), "WO", 2026)

		assert.Error(t, err)
		assert.Equal(t, int64(0), counter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
