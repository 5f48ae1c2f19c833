package equide

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	owner, a, b := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, name, created_at FROM equides WHERE id IN ($1,$2) ORDER BY name ASC")).
		WithArgs(a.String(), b.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "created_at"}).
			AddRow(b.String(), owner.String(), "Éclair", time.Now()).
			AddRow(a.String(), owner.String(), "Tornade", time.Now()))

	equides, err := repo.GetByIDs(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	require.Len(t, equides, 2)
	assert.Equal(t, "Éclair", equides[0].Name)
	assert.Equal(t, owner, equides[1].OwnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByIDs_Empty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	equides, err := NewRepository(db).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, equides)
}

func TestRepository_GetByIDs_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM equides")).WillReturnError(errors.New("connection reset"))

	_, err = NewRepository(db).GetByIDs(context.Background(), []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrExecQuery)
}
