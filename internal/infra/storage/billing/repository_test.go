package billing

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_RecordEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	insert := regexp.QuoteMeta("INSERT INTO stripe_events (event_id,event_type,payload) VALUES ($1,$2,$3) ON CONFLICT (event_id) DO NOTHING")

	mock.ExpectExec(insert).
		WithArgs("evt_1", "checkout.session.completed", `{"id":"evt_1"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).
		WithArgs("evt_1", "checkout.session.completed", `{"id":"evt_1"}`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	event := StripeEvent{ID: "evt_1", Type: "checkout.session.completed", Payload: []byte(`{"id":"evt_1"}`)}

	require.NoError(t, repo.RecordEvent(context.Background(), event))
	assert.ErrorIs(t, repo.RecordEvent(context.Background(), event), ErrDuplicateEvent)
	require.NoError(t, mock.ExpectationsWereMet())
}
