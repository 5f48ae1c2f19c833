package update_appointment

import (
	"context"

	"github.com/ekicare/ekicare-api/internal/domain"
	updateAppointment "github.com/ekicare/ekicare-api/internal/usecase/update_appointment"
)

type UpdateAppointmentUseCase interface {
	Execute(ctx context.Context, req *updateAppointment.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
