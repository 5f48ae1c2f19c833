package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// AppointmentRepository stockage des rendez-vous
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository profils de l'appelant et des interlocuteurs
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error)
}

// EquideRepository noms des équidés
type EquideRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Equide, error)
}

// TransactionManager interface pour les transactions
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics compteurs des rendez-vous
type Metrics interface {
	ObserveTransition(from, to string)
}

// Logger interface pour le logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
