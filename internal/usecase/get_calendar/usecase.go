package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	profileService "github.com/ekicare/ekicare-api/internal/service/profile"
)

// UseCase grille mensuelle des jours travaillés d'un pro
type UseCase struct {
	workingHours WorkingHoursProvider
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(workingHours WorkingHoursProvider, logger Logger) *UseCase {
	return &UseCase{
		workingHours: workingHours,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute construit la grille de req.Month
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProID == uuid.Nil {
		return nil, fmt.Errorf("%w: pro id is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	month := req.Month
	if month.IsZero() {
		month = now
	}
	month = domain.FirstOfMonth(month)

	uc.logger.Info("GetCalendar: pro=%s, month=%s", req.ProID, month.Format(domain.MonthFormat))

	hours, err := uc.workingHours.GetWorkingHours(ctx, req.ProID)
	if err != nil {
		if errors.Is(err, profileService.ErrProNotFound) {
			uc.logger.Warn("GetCalendar: pro id=%s not found", req.ProID)
			return nil, ErrProNotFound
		}
		uc.logger.Error("GetCalendar: failed to get working hours of pro=%s: %v", req.ProID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	return &Response{
		ProID:      req.ProID,
		Month:      month,
		Configured: hours.IsConfigured(),
		Days:       domain.BuildMonthGrid(month, now, req.Selected, hours),
	}, nil
}
