package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/pkg/types"
)

// WorkingHoursProvider horaires en cache d'un pro.
// Retourne profile.ErrProNotFound pour un id inconnu ou un profil non pro.
type WorkingHoursProvider interface {
	GetWorkingHours(ctx context.Context, proID uuid.UUID) (domain.WorkingHours, error)
}

// AppointmentRepository créneaux déjà réservés
type AppointmentRepository interface {
	GetBookedSlots(ctx context.Context, proID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]types.TimeString, error)
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
