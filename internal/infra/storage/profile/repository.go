package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/pkg/dbmetrics"
	"github.com/ekicare/ekicare-api/pkg/psqlbuilder"
)

const tableName = "profiles"

var columns = []string{
	"id",
	"role",
	"first_name",
	"last_name",
	"email",
	"phone",
	"profession",
	"is_verified",
	"is_subscribed",
	"stripe_customer_id",
	"stripe_subscription_id",
	"working_hours",
	"created_at",
	"updated_at",
}

// Repository stockage des profils
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository crée le repository des profils
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID retourne un profil
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	profile, err := scanProfile(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan profile: %w", ErrScanRow, err)
	}

	return profile, nil
}

// GetByIDs profils trouvés parmi ids, indexés par id. Les ids absents sont ignorés.
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error) {
	result := make(map[uuid.UUID]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": uniqueStrings(ids)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %w", ErrScanRow, err)
		}
		result[profile.ID] = profile
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// UpdateWorkingHours remplace le planning hebdomadaire d'un pro
func (r *Repository) UpdateWorkingHours(ctx context.Context, proID uuid.UUID, hours domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("working_hours", hours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": proID.String(), "role": string(domain.RolePro)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateWorkingHours - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateWorkingHours", query, args)
}

// ActivateSubscription marque un pro comme vérifié et abonné et enregistre les ids Stripe.
// Des ids vides laissent les valeurs existantes.
func (r *Repository) ActivateSubscription(ctx context.Context, sub domain.Subscription) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("is_verified", true).
		Set("is_subscribed", true)

	if sub.CustomerID != "" {
		updateBuilder = updateBuilder.Set("stripe_customer_id", sub.CustomerID)
	}
	if sub.SubscriptionID != "" {
		updateBuilder = updateBuilder.Set("stripe_subscription_id", sub.SubscriptionID)
	}

	query, args, err := updateBuilder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": sub.ProfileID.String()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ActivateSubscription - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "ActivateSubscription", query, args)
}

// DeactivateSubscription remet is_subscribed à false sur le profil qui porte subscriptionID
func (r *Repository) DeactivateSubscription(ctx context.Context, subscriptionID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("is_subscribed", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"stripe_subscription_id": subscriptionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeactivateSubscription - build update query: %w", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "DeactivateSubscription", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor dbmetrics.DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var (
		profile                    domain.Profile
		role                       string
		firstName, lastName, email sql.NullString
		createdAt, updatedAt       sql.NullTime
	)

	err := row.Scan(
		&profile.ID,
		&role,
		&firstName,
		&lastName,
		&email,
		&profile.Phone,
		&profile.Profession,
		&profile.IsVerified,
		&profile.IsSubscribed,
		&profile.StripeCustomerID,
		&profile.StripeSubscriptionID,
		&profile.WorkingHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	profile.Role = domain.Role(role)
	profile.FirstName = firstName.String
	profile.LastName = lastName.String
	profile.Email = email.String
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return &profile, nil
}

func uniqueStrings(ids []uuid.UUID) []string {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id.String())
	}
	return result
}
