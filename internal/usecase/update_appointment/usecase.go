package update_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	appointmentRepo "github.com/ekicare/ekicare-api/internal/infra/storage/appointment"
	"github.com/ekicare/ekicare-api/internal/integrations/mailer"
)

// UseCase applique la modification d'un participant à un rendez-vous
type UseCase struct {
	appointmentRepo AppointmentRepository
	profileRepo     ProfileRepository
	txManager       TransactionManager
	notifier        Notifier
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crée le use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	profileRepo ProfileRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		txManager:       txManager,
		notifier:        notifier,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute autorise la modification entière une seule fois, puis l'écrit.
// Une modification sans champ retourne le rendez-vous intact.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("UpdateAppointment: appointment=%s, user=%s, fields=%v",
		req.AppointmentID, req.UserID, req.Change.Fields())

	// 1. Validation des valeurs
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}
	change := normalize(req.Change)

	var (
		before  domain.AppointmentStatus
		result  *domain.Appointment
		actorAs domain.Role
	)

	// 2. Verrou, autorisation, écriture
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		role, ok := current.RoleOf(req.UserID)
		if !ok {
			uc.logger.Warn("UpdateAppointment: user=%s is not a participant of appointment id=%s",
				req.UserID, req.AppointmentID)
			return ErrAppointmentNotFound
		}
		actorAs = role
		before = current.Status

		if change.IsEmpty() {
			uc.logger.Info("UpdateAppointment: empty change on appointment id=%s", current.ID)
			result = current
			return nil
		}

		if err := domain.AuthorizeChange(current.Status, role, change); err != nil {
			uc.logger.Warn("UpdateAppointment: %v", err)
			return fmt.Errorf("%w: %w", ErrForbidden, err)
		}

		updated := current.Apply(change)

		// un créneau déplacé doit être libre, hors ce rendez-vous lui-même
		if change.MovesSlot() && !updated.MainSlot.Equal(current.MainSlot) {
			booked, err := uc.appointmentRepo.GetBookedSlots(txCtx, updated.ProID, updated.SlotDate(), &updated.ID)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to get booked slots: %v", err)
				return fmt.Errorf("%w: failed to get booked slots: %w", ErrInternal, err)
			}
			for _, slot := range booked {
				if slot == updated.SlotStart() {
					uc.logger.Warn("UpdateAppointment: slot %s already taken for pro=%s",
						updated.MainSlot.Format(timeLayout), updated.ProID)
					return ErrSlotTaken
				}
			}
		}

		result, err = uc.appointmentRepo.Update(txCtx, &updated)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", updated.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrForbidden),
			errors.Is(err, ErrSlotTaken), errors.Is(err, ErrInternal):
			return nil, err
		}
		uc.logger.Error("UpdateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
	}

	// 3. Métriques et notification des changements de statut
	if change.ChangesStatus() {
		uc.metrics.ObserveTransition(string(before), string(result.Status))
		uc.notifyCounterpart(ctx, result, req.UserID, actorAs)
	}

	uc.logger.Info("UpdateAppointment: appointment id=%s updated by %s, status %s -> %s",
		result.ID, actorAs, before, result.Status)
	return result, nil
}

// notifyCounterpart écrit à l'autre participant. Les échecs sont seulement loggés.
func (uc *UseCase) notifyCounterpart(ctx context.Context, appt *domain.Appointment, actorID uuid.UUID, actorRole domain.Role) {
	if !uc.notifier.Enabled() {
		return
	}

	recipientID := appt.CounterpartOf(actorRole)

	profiles, err := uc.profileRepo.GetByIDs(ctx, []uuid.UUID{actorID, recipientID})
	if err != nil {
		uc.logger.Warn("UpdateAppointment: notification skipped, failed to get profiles: %v", err)
		return
	}

	recipient, ok := profiles[recipientID]
	if !ok || recipient.Email == "" {
		return
	}
	actorName := "Votre interlocuteur"
	if actor, ok := profiles[actorID]; ok && actor.FullName() != "" {
		actorName = actor.FullName()
	}

	msg := mailer.AppointmentStatusChanged(recipient.Email, actorName, string(appt.Status), appt.MainSlot)
	if err := uc.notifier.Enqueue(msg); err != nil {
		uc.logger.Warn("UpdateAppointment: notification to %s not queued: %v", recipientID, err)
	}
}

// timeLayout format des créneaux dans les logs
const timeLayout = "2006-01-02T15:04Z07:00"
