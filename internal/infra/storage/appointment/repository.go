package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/pkg/dbmetrics"
	"github.com/ekicare/ekicare-api/pkg/psqlbuilder"
	"github.com/ekicare/ekicare-api/pkg/types"
)

const (
	tableName = "appointments"

	// uniqueViolation SQLSTATE 23505, levé par appointments_pro_slot_key
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"owner_id",
	"pro_id",
	"equide_ids",
	"main_slot",
	"alternative_slots",
	"comment",
	"address",
	"status",
	"compte_rendu",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository stockage des rendez-vous
type Repository struct {
	db DBExecutor
}

// NewRepository crée le repository des rendez-vous
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create insère un nouveau rendez-vous.
// ErrSlotTaken quand l'index unique (pro_id, main_slot) rejette la ligne.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	alternatives, err := encodeSlots(appt.AlternativeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - alternative_slots: %w", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"owner_id",
			"pro_id",
			"equide_ids",
			"main_slot",
			"alternative_slots",
			"comment",
			"address",
			"status",
			"duration_minutes",
		).
		Values(
			appt.OwnerID.String(),
			appt.ProID.String(),
			pq.Array(uuidStrings(appt.EquideIDs)),
			appt.MainSlot.UTC(),
			alternatives,
			appt.Comment,
			appt.Address,
			string(appt.Status),
			appt.DurationMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID retourne un rendez-vous. Dans une transaction la ligne est verrouillée FOR UPDATE.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appt, nil
}

// List rendez-vous d'un utilisateur en tant que propriétaire ou pro, créneau le plus récent d'abord
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	participantColumn := "owner_id"
	if filter.Role == domain.RolePro {
		participantColumn = "pro_id"
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{participantColumn: filter.UserID.String()}).
		OrderBy("main_slot DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// Update écrit tous les champs modifiables de appt et rafraîchit updated_at
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	alternatives, err := encodeSlots(appt.AlternativeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - alternative_slots: %w", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(appt.Status)).
		Set("main_slot", appt.MainSlot.UTC()).
		Set("alternative_slots", alternatives).
		Set("comment", appt.Comment).
		Set("address", appt.Address).
		Set("compte_rendu", appt.CompteRendu).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID.String()}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	appt.UpdatedAt = updatedAt
	return appt, nil
}

// Delete supprime un rendez-vous
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// GetBookedSlots heures de début UTC déjà prises dans l'agenda du pro pour date.
// excludeID écarte un rendez-vous (celui qu'on reporte). Dans une
// transaction les lignes concernées sont verrouillées.
func (r *Repository) GetBookedSlots(ctx context.Context, proID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dayStart := domain.TruncateToDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	selectBuilder := psqlbuilder.Select("main_slot").
		From(tableName).
		Where(squirrel.Eq{"pro_id": proID.String()}).
		Where(squirrel.GtOrEq{"main_slot": dayStart}).
		Where(squirrel.Lt{"main_slot": dayEnd}).
		Where(squirrel.Eq{"status": statusStrings(domain.ClaimingStatuses)}).
		OrderBy("main_slot ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": excludeID.String()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	booked := make([]types.TimeString, 0)
	for rows.Next() {
		var slot time.Time
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSlots - scan main_slot: %w", ErrScanRow, err)
		}
		booked = append(booked, types.NewTimeString(slot.UTC()))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSlots - rows error: %w", ErrScanRow, err)
	}

	return booked, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		equideIDs            pq.StringArray
		alternatives         []byte
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.OwnerID,
		&appt.ProID,
		&equideIDs,
		&appt.MainSlot,
		&alternatives,
		&appt.Comment,
		&appt.Address,
		&appt.Status,
		&appt.CompteRendu,
		&appt.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appt.EquideIDs, err = parseUUIDs(equideIDs)
	if err != nil {
		return nil, err
	}

	appt.AlternativeSlots, err = decodeSlots(alternatives)
	if err != nil {
		return nil, err
	}

	appt.MainSlot = appt.MainSlot.UTC()
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// encodeSlots les créneaux alternatifs sont stockés en tableau jsonb d'instants RFC3339
func encodeSlots(slots []time.Time) (string, error) {
	utc := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		utc = append(utc, s.UTC())
	}
	data, err := json.Marshal(utc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSlots(raw []byte) ([]time.Time, error) {
	slots := make([]time.Time, 0)
	if len(raw) == 0 || string(raw) == "null" {
		return slots, nil
	}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, fmt.Errorf("alternative_slots: %w", err)
	}
	for i := range slots {
		slots[i] = slots[i].UTC()
	}
	return slots, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	result := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("equide_ids: %w", err)
		}
		result = append(result, id)
	}
	return result, nil
}

func statusStrings(statuses []domain.AppointmentStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
