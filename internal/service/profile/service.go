package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/service/profile/models"
)

// Service horaires de travail des professionnels
type Service struct {
	profileRepo ProfileRepository
	cache       WorkingHoursCache
	defaultDay  domain.DaySchedule
	logger      Logger
}

// NewService crée le service des profils
func NewService(
	profileRepo ProfileRepository,
	cache WorkingHoursCache,
	defaultDay domain.DaySchedule,
	logger Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		cache:       cache,
		defaultDay:  defaultDay,
		logger:      logger,
	}
}

// GetWorkingHours retourne les horaires du pro, nil s'ils n'ont jamais été saisis.
// Seuls les pros sont mis en cache, un hit prouve donc que l'id est un pro.
func (s *Service) GetWorkingHours(ctx context.Context, proID uuid.UUID) (domain.WorkingHours, error) {
	if hours, ok := s.cache.Get(proID); ok {
		return hours, nil
	}

	profile, err := s.profileRepo.GetByID(ctx, proID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("GetWorkingHours: profile id=%s not found", proID)
			return nil, ErrProNotFound
		}
		s.logger.Error("GetWorkingHours: repository error for profile id=%s: %v", proID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %w", ErrInternal, err)
	}

	if !profile.IsPro() {
		s.logger.Warn("GetWorkingHours: profile id=%s is not a pro", proID)
		return nil, ErrProNotFound
	}

	s.cache.Set(proID, profile.WorkingHours)
	return profile.WorkingHours, nil
}

// GetSchedule vue publique de la semaine d'un pro
func (s *Service) GetSchedule(ctx context.Context, proID uuid.UUID) (*models.WorkingHoursResponse, error) {
	s.logger.Info("GetSchedule: fetching working hours of pro=%s", proID)

	hours, err := s.GetWorkingHours(ctx, proID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainWorkingHours(proID, hours, s.defaultDay), nil
}

// UpdateWorkingHours remplace les horaires du pro appelant
func (s *Service) UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpdateWorkingHours: updating working hours of user=%s", req.UserID)

	// 1. Validation des horaires
	if req.Hours == nil {
		return nil, fmt.Errorf("%w: working hours are required", ErrInvalidInput)
	}
	if err := req.Hours.Validate(); err != nil {
		s.logger.Warn("UpdateWorkingHours: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Seuls les professionnels ont des horaires
	profile, err := s.profileRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("UpdateWorkingHours: profile id=%s not found", req.UserID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("UpdateWorkingHours: repository error for profile id=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %w", ErrInternal, err)
	}
	if !profile.IsPro() {
		s.logger.Warn("UpdateWorkingHours: user=%s is not a pro", req.UserID)
		return nil, ErrAccessDenied
	}

	// 3. Enregistrement et invalidation du cache
	if err := s.profileRepo.UpdateWorkingHours(ctx, req.UserID, req.Hours); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("UpdateWorkingHours: repository error for pro=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %w", ErrInternal, err)
	}
	s.cache.Invalidate(req.UserID)

	s.logger.Info("UpdateWorkingHours: saved %d days for pro=%s", len(req.Hours), req.UserID)
	return models.FromDomainWorkingHours(req.UserID, req.Hours, s.defaultDay), nil
}
