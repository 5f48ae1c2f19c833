package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/pkg/types"
)

// DaySlots créneaux réservables d'un pro sur une date
type DaySlots struct {
	ProID           uuid.UUID
	Date            time.Time
	DurationMinutes int
	Schedule        DaySchedule
	DefaultSchedule bool // pro has no working hours, the default day was used
	Slots           []types.TimeString
}

// IsEmpty plus rien de réservable ce jour-là
func (s *DaySlots) IsEmpty() bool {
	return len(s.Slots) == 0
}

// BookingRules bornes de durée et journée appliquée aux pros sans horaires
type BookingRules struct {
	DefaultDuration int
	MinDuration     int
	MaxDuration     int
	DefaultDay      DaySchedule
}

// DefaultBookingRules visites de 60 minutes entre 08:00 et 18:00
func DefaultBookingRules() BookingRules {
	return BookingRules{
		DefaultDuration: DefaultDurationMinutes,
		MinDuration:     MinDurationMinutes,
		MaxDuration:     MaxDurationMinutes,
		DefaultDay: DaySchedule{
			Active: true,
			Start:  types.MustTimeString("08:00"),
			End:    types.MustTimeString("18:00"),
		},
	}
}

// Duration résout la durée demandée, 0 sélectionne la valeur par défaut
func (r BookingRules) Duration(requested int) (int, error) {
	if requested == 0 {
		return r.DefaultDuration, nil
	}
	if requested < r.MinDuration || requested > r.MaxDuration {
		return 0, fmt.Errorf("%w: %d min, allowed %d..%d", ErrInvalidDuration, requested, r.MinDuration, r.MaxDuration)
	}
	return requested, nil
}
