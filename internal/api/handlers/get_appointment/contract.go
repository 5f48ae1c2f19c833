package get_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/service/appointments/models"
)

type AppointmentsService interface {
	Get(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
