package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekicare/ekicare-api/pkg/dbmetrics"
	"github.com/ekicare/ekicare-api/pkg/psqlbuilder"
)

var (
	// ErrDuplicateEvent l'événement Stripe a déjà été traité
	ErrDuplicateEvent = errors.New("billing.repository: duplicate stripe event")

	ErrBuildQuery = errors.New("billing.repository: failed to build query")
	ErrExecQuery  = errors.New("billing.repository: failed to execute query")
)

// StripeEvent événement webhook traité, conservé pour l'idempotence
type StripeEvent struct {
	ID      string
	Type    string
	Payload []byte
}

// Repository stockage du suivi des webhooks
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// RecordEvent enregistre l'id d'un événement Stripe. ErrDuplicateEvent s'il est déjà connu.
func (r *Repository) RecordEvent(ctx context.Context, event StripeEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	payload := string(event.Payload)
	if payload == "" {
		payload = "{}"
	}

	query, args, err := psqlbuilder.Insert("stripe_events").
		Columns("event_id", "event_type", "payload").
		Values(event.ID, event.Type, payload).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RecordEvent - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RecordEvent - execute insert: %w", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RecordEvent - get rows affected: %w", ErrExecQuery, err)
	}

	if inserted == 0 {
		return ErrDuplicateEvent
	}

	return nil
}
