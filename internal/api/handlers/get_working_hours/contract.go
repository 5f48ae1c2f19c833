package get_working_hours

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/service/profile/models"
)

type ProfileService interface {
	GetSchedule(ctx context.Context, proID uuid.UUID) (*models.WorkingHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
