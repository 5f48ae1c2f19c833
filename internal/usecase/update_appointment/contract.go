package update_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/internal/integrations/mailer"
	"github.com/ekicare/ekicare-api/pkg/types"
)

// AppointmentRepository stockage des rendez-vous
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetBookedSlots(ctx context.Context, proID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]types.TimeString, error)
}

// ProfileRepository lecture des profils pour les notifications
type ProfileRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Profile, error)
}

// TransactionManager exécute fn dans une transaction
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier met en file les mails de notification
type Notifier interface {
	Enabled() bool
	Enqueue(msg mailer.Message) error
}

// Metrics compteurs des rendez-vous
type Metrics interface {
	ObserveTransition(from, to string)
}

// TimeProvider source de l'heure courante, remplacée dans les tests
type TimeProvider interface {
	Now() time.Time
}

// Logger interface pour le use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider horloge système
type RealTimeProvider struct{}

// Now retourne l'heure courante
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
