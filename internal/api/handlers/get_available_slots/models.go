package get_available_slots

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	getAvailableSlots "github.com/ekicare/ekicare-api/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse modèle de réponse HTTP
type AvailableSlotsResponse struct {
	ProID           uuid.UUID          `json:"pro_id"`
	Date            string             `json:"date"`
	DurationMinutes int                `json:"duration_minutes"`
	Schedule        domain.DaySchedule `json:"schedule"`
	DefaultSchedule bool               `json:"default_schedule"`
	Slots           []string           `json:"slots"`
}

// FromDomainDaySlots convertit la journée calculée pour la réponse
func FromDomainDaySlots(day *domain.DaySlots) *AvailableSlotsResponse {
	slots := make([]string, len(day.Slots))
	for i, slot := range day.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		ProID:           day.ProID,
		Date:            day.Date.Format(domain.DateFormat),
		DurationMinutes: day.DurationMinutes,
		Schedule:        day.Schedule,
		DefaultSchedule: day.DefaultSchedule,
		Slots:           slots,
	}
}

// ToUseCaseRequest construit la requête du use case depuis les query params.
// Une durée vide sélectionne la durée par défaut.
func ToUseCaseRequest(proID uuid.UUID, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	var duration int
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			return nil, err
		}
	}

	return &getAvailableSlots.Request{
		ProID:           proID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}
