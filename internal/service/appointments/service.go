package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	appointmentRepo "github.com/ekicare/ekicare-api/internal/infra/storage/appointment"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/service/appointments/models"
)

// Service lecture et suppression des rendez-vous
type Service struct {
	appointmentRepo AppointmentRepository
	profileRepo     ProfileRepository
	equideRepo      EquideRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewService crée le service des rendez-vous
func NewService(
	appointmentRepo AppointmentRepository,
	profileRepo ProfileRepository,
	equideRepo EquideRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		profileRepo:     profileRepo,
		equideRepo:      equideRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// List retourne les rendez-vous de l'appelant. Le propriétaire voit ceux qu'il a pris,
// le pro ceux pris avec lui.
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%s, status=%v", req.UserID, req.Status)

	profile, err := s.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("List: profile id=%s not found", req.UserID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("List: repository error for profile id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	filter := domain.AppointmentsFilter{UserID: req.UserID, Role: profile.Role}
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	appts, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %w", ErrInternal, err)
	}

	resp, err := s.enrich(ctx, appts, req.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: fetched %d appointments for user=%s", len(resp.Appointments), req.UserID)
	return resp, nil
}

// Get retourne un rendez-vous si l'appelant y participe
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Get: fetching appointment id=%s for user=%s", id, userID)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Get: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Get: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %w", ErrInternal, err)
	}

	if _, ok := appt.RoleOf(userID); !ok {
		s.logger.Warn("Get: user=%s is not a participant of appointment id=%s", userID, id)
		return nil, ErrAppointmentNotFound
	}

	resp, err := s.enrich(ctx, []*domain.Appointment{appt}, userID)
	if err != nil {
		return nil, err
	}

	return &resp.Appointments[0], nil
}

// Delete supprime un rendez-vous en attente pour le compte de son propriétaire
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	s.logger.Info("Delete: deleting appointment id=%s by user=%s", id, userID)

	var status domain.AppointmentStatus

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appt, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Delete: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}

		role, ok := appt.RoleOf(userID)
		if !ok {
			s.logger.Warn("Delete: user=%s is not a participant of appointment id=%s", userID, id)
			return ErrAppointmentNotFound
		}

		if !domain.CanDelete(appt.Status, role) {
			s.logger.Warn("Delete: %s cannot delete appointment id=%s while %s", role, id, appt.Status)
			return ErrCannotDelete
		}
		status = appt.Status

		if err := s.appointmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Delete: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %w", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrCannotDelete), errors.Is(err, ErrInternal):
			return err
		}
		s.logger.Error("Delete: transaction failed for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction failed: %w", ErrInternal, err)
	}

	s.metrics.ObserveTransition(string(status), "deleted")
	s.logger.Info("Delete: deleted appointment id=%s", id)
	return nil
}

// enrich charge en lot les équidés et profils d'une page de rendez-vous
func (s *Service) enrich(ctx context.Context, appts []*domain.Appointment, userID uuid.UUID) (*models.AppointmentListResponse, error) {
	resp := &models.AppointmentListResponse{
		Appointments: make([]models.AppointmentResponse, 0, len(appts)),
	}
	if len(appts) == 0 {
		return resp, nil
	}

	var equideIDs, profileIDs []uuid.UUID
	for _, a := range appts {
		equideIDs = append(equideIDs, a.EquideIDs...)
		role, _ := a.RoleOf(userID)
		profileIDs = append(profileIDs, a.CounterpartOf(role))
	}

	equides, err := s.equideRepo.GetByIDs(ctx, equideIDs)
	if err != nil {
		s.logger.Error("enrich: failed to get equides: %v", err)
		return nil, fmt.Errorf("%w: enrich - equides: %w", ErrInternal, err)
	}
	equidesByID := make(map[uuid.UUID]*domain.Equide, len(equides))
	for _, e := range equides {
		equidesByID[e.ID] = e
	}

	profiles, err := s.profileRepo.GetByIDs(ctx, profileIDs)
	if err != nil {
		s.logger.Error("enrich: failed to get profiles: %v", err)
		return nil, fmt.Errorf("%w: enrich - profiles: %w", ErrInternal, err)
	}

	for _, a := range appts {
		role, _ := a.RoleOf(userID)
		item := models.FromDomainAppointment(a)
		item.Enrich(a, role, equidesByID, profiles)
		resp.Appointments = append(resp.Appointments, *item)
	}

	return resp, nil
}
