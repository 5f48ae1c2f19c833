package get_available_slots

import (
	"context"

	"github.com/ekicare/ekicare-api/internal/domain"
	getAvailableSlots "github.com/ekicare/ekicare-api/internal/usecase/get_available_slots"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*domain.DaySlots, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
