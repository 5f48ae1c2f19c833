package get_calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// WorkingHoursProvider horaires en cache d'un pro
type WorkingHoursProvider interface {
	GetWorkingHours(ctx context.Context, proID uuid.UUID) (domain.WorkingHours, error)
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
