package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// ProfileRepository stockage des profils
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpdateWorkingHours(ctx context.Context, proID uuid.UUID, hours domain.WorkingHours) error
}

// WorkingHoursCache cache TTL des horaires des pros
type WorkingHoursCache interface {
	Get(proID uuid.UUID) (domain.WorkingHours, bool)
	Set(proID uuid.UUID, hours domain.WorkingHours)
	Invalidate(proID uuid.UUID)
}

// Logger interface pour le service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
