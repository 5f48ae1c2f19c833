package equide

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

var (
	ErrBuildQuery = errors.New("equide.repository: failed to build query")
	ErrExecQuery  = errors.New("equide.repository: failed to execute query")
	ErrScanRow    = errors.New("equide.repository: failed to scan row")
)

// Repository stockage des équidés (lecture seule, le front-end les gère)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs équidés trouvés parmi ids, triés par nom
func (r *Repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Equide, error) {
	if len(ids) == 0 {
		return []*domain.Equide{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, id.String())
	}

	query, args, err := psqlbuilder.Select("id", "owner_id", "name", "created_at").
		From("equides").
		Where(squirrel.Eq{"id": strs}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	equides := make([]*domain.Equide, 0, len(ids))
	for rows.Next() {
		var (
			equide    domain.Equide
			createdAt sql.NullTime
		)
		if err := rows.Scan(&equide.ID, &equide.OwnerID, &equide.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: GetByIDs - scan row: %w", ErrScanRow, err)
		}
		equide.CreatedAt = createdAt.Time
		equides = append(equides, &equide)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - rows error: %w", ErrScanRow, err)
	}

	return equides, nil
}
