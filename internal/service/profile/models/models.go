package models

import (
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// WorkingHoursResponse semaine d'un pro, chaque jour résolu
type WorkingHoursResponse struct {
	ProID uuid.UUID `json:"pro_id"`
	// Configured vaut false si le pro n'a jamais saisi d'horaires et que le jour par défaut s'applique
	Configured bool                          `json:"configured"`
	Days       map[string]domain.DaySchedule `json:"days"`
}

// UpdateWorkingHoursRequest remplace les horaires du pro appelant
type UpdateWorkingHoursRequest struct {
	UserID uuid.UUID
	Hours  domain.WorkingHours
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// FromDomainWorkingHours résout chaque jour; les jours absents d'un planning configuré sont inactifs
func FromDomainWorkingHours(proID uuid.UUID, hours domain.WorkingHours, fallback domain.DaySchedule) *WorkingHoursResponse {
	resp := &WorkingHoursResponse{
		ProID:      proID,
		Configured: hours.IsConfigured(),
		Days:       make(map[string]domain.DaySchedule, len(weekdays)),
	}

	for _, day := range weekdays {
		if hours.IsConfigured() {
			resp.Days[day] = hours[day]
			continue
		}
		resp.Days[day] = fallback
	}

	return resp
}
