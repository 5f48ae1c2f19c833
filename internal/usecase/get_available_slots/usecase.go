package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekicare/ekicare-api/internal/domain"
	profileService "github.com/ekicare/ekicare-api/internal/service/profile"
)

// UseCase créneaux réservables d'un pro pour une date
type UseCase struct {
	appointmentRepo AppointmentRepository
	workingHours    WorkingHoursProvider
	rules           domain.BookingRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée le use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	workingHours WorkingHoursProvider,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		workingHours:    workingHours,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute calcule les heures de début libres du pro pour req.Date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.DaySlots, error) {
	uc.logger.Info("GetAvailableSlots: pro=%s, date=%s, duration=%d",
		req.ProID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Validation des données
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.rules.Duration(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	date := domain.TruncateToDay(req.Date)

	// 2. Horaires du pro
	hours, err := uc.workingHours.GetWorkingHours(ctx, req.ProID)
	if err != nil {
		if errors.Is(err, profileService.ErrProNotFound) {
			uc.logger.Warn("GetAvailableSlots: pro id=%s not found", req.ProID)
			return nil, ErrProNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours of pro=%s: %v", req.ProID, err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	result := &domain.DaySlots{
		ProID:           req.ProID,
		Date:            date,
		DurationMinutes: duration,
		Schedule:        hours.DayFor(date, uc.rules.DefaultDay),
		DefaultSchedule: !hours.IsConfigured(),
	}

	// 3. Jour non travaillé: rien à chercher
	if !result.Schedule.Active {
		uc.logger.Info("GetAvailableSlots: pro=%s does not work on %s", req.ProID, domain.WeekdayKey(date))
		result.Slots = GenerateSlots(result.Schedule, duration)
		return result, nil
	}

	// 4. Débuts déjà réservés
	booked, err := uc.appointmentRepo.GetBookedSlots(ctx, req.ProID, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked slots: %w", ErrInternal, err)
	}

	// 5. Candidats moins réservés, puis retrait de ce qui a déjà commencé
	slots := AvailableSlots(hours, uc.rules.DefaultDay, date, duration, booked)
	result.Slots = dropElapsed(slots, date, uc.timeProvider.Now())

	uc.logger.Info("GetAvailableSlots: %d slots available for pro=%s on %s (%d booked)",
		len(result.Slots), req.ProID, date.Format(domain.DateFormat), len(booked))
	return result, nil
}
