package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	appointmentRepo "github.com/ekicare/ekicare-api/internal/infra/storage/appointment"
	"github.com/ekicare/ekicare-api/internal/integrations/mailer"
	profileService "github.com/ekicare/ekicare-api/internal/service/profile"
	"github.com/ekicare/ekicare-api/pkg/types"
)

// UseCase prise de rendez-vous par un propriétaire
type UseCase struct {
	appointmentRepo AppointmentRepository
	profileRepo     ProfileRepository
	equideRepo      EquideRepository
	workingHours    WorkingHoursProvider
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	rules           domain.BookingRules
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée le use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	profileRepo ProfileRepository,
	equideRepo EquideRepository,
	workingHours WorkingHoursProvider,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	rules domain.BookingRules,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		equideRepo:      equideRepo,
		workingHours:    workingHours,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		rules:           rules,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute crée un rendez-vous en attente.
// La vérification des créneaux réservés et l'insertion partagent une transaction serializable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: owner=%s, pro=%s, slot=%s, equides=%d",
		req.OwnerID, req.ProID, req.MainSlot.UTC().Format(timeLayout), len(req.EquideIDs))

	// 1. Validation des données
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	duration, err := uc.rules.Duration(req.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. L'appelant doit être propriétaire, la cible un pro
	profiles, err := uc.profileRepo.GetByIDs(ctx, []uuid.UUID{req.OwnerID, req.ProID})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get profiles: %v", err)
		return nil, fmt.Errorf("%w: failed to get profiles: %w", ErrInternal, err)
	}

	owner, ok := profiles[req.OwnerID]
	if !ok || !owner.IsOwner() {
		uc.logger.Warn("CreateAppointment: user=%s is not an owner", req.OwnerID)
		return nil, ErrNotOwner
	}

	pro, ok := profiles[req.ProID]
	if !ok || !pro.IsPro() {
		uc.logger.Warn("CreateAppointment: pro id=%s not found", req.ProID)
		return nil, ErrProNotFound
	}

	// 3. Chaque équidé appartient à l'appelant
	if err := uc.checkEquides(ctx, req.OwnerID, req.EquideIDs); err != nil {
		return nil, err
	}

	// 4. Le créneau est sur la grille du pro pour ce jour
	if err := uc.checkWorkingHours(ctx, req.ProID, normalizeSlot(req.MainSlot), duration); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		OwnerID:          req.OwnerID,
		ProID:            req.ProID,
		EquideIDs:        req.EquideIDs,
		MainSlot:         normalizeSlot(req.MainSlot),
		AlternativeSlots: make([]time.Time, 0, len(req.AlternativeSlots)),
		Comment:          req.Comment,
		Address:          req.Address,
		Status:           domain.StatusPending,
		DurationMinutes:  duration,
	}
	for _, slot := range req.AlternativeSlots {
		appt.AlternativeSlots = append(appt.AlternativeSlots, normalizeSlot(slot))
	}

	var created *domain.Appointment

	// 5. Vérification et réservation
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booked, err := uc.appointmentRepo.GetBookedSlots(txCtx, appt.ProID, appt.SlotDate(), nil)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get booked slots: %v", err)
			return fmt.Errorf("%w: failed to get booked slots: %w", ErrInternal, err)
		}

		if containsSlot(booked, appt.SlotStart()) {
			uc.logger.Warn("CreateAppointment: slot %s already taken for pro=%s",
				appt.MainSlot.Format(timeLayout), appt.ProID)
			return ErrSlotTaken
		}

		created, err = uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateAppointment: slot %s claimed concurrently for pro=%s",
					appt.MainSlot.Format(timeLayout), appt.ProID)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	uc.metrics.ObserveTransition("new", string(domain.StatusPending))

	// 6. Notification du pro
	if err := uc.notifier.Enqueue(mailer.AppointmentRequested(pro.Email, owner.FullName(), created.MainSlot)); err != nil {
		uc.logger.Warn("CreateAppointment: notification to pro=%s not queued: %v", pro.ID, err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s", created.ID)
	return created, nil
}

func (uc *UseCase) checkWorkingHours(ctx context.Context, proID uuid.UUID, slot time.Time, duration int) error {
	hours, err := uc.workingHours.GetWorkingHours(ctx, proID)
	if err != nil {
		if errors.Is(err, profileService.ErrProNotFound) {
			uc.logger.Warn("CreateAppointment: pro id=%s not found", proID)
			return ErrProNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get working hours of pro=%s: %v", proID, err)
		return fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	day := hours.DayFor(slot, uc.rules.DefaultDay)
	if !day.Fits(types.NewTimeString(slot), duration) {
		uc.logger.Warn("CreateAppointment: slot %s (%d min) outside working hours of pro=%s",
			slot.Format(timeLayout), duration, proID)
		return ErrOutsideWorkingHours
	}
	return nil
}

func (uc *UseCase) checkEquides(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) error {
	equides, err := uc.equideRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get equides: %v", err)
		return fmt.Errorf("%w: failed to get equides: %w", ErrInternal, err)
	}

	owned := make(map[uuid.UUID]bool, len(equides))
	for _, e := range equides {
		owned[e.ID] = e.OwnerID == ownerID
	}

	for _, id := range ids {
		if !owned[id] {
			uc.logger.Warn("CreateAppointment: equide id=%s does not belong to owner=%s", id, ownerID)
			return fmt.Errorf("%w: %s", ErrEquideNotOwned, id)
		}
	}

	return nil
}

// timeLayout format des créneaux dans les logs
const timeLayout = "2006-01-02T15:04Z07:00"
