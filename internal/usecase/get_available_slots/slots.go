package get_available_slots

import (
	"time"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/pkg/types"
)

// GenerateSlots heures de début candidates d'une journée, toutes les duration minutes depuis start.
// Un créneau n'est émis que s'il finit au plus tard à end, un intervalle partiel final est donc ignoré.
func GenerateSlots(day domain.DaySchedule, duration int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if !day.Active || duration <= 0 {
		return slots
	}

	start, end := day.Start.Minutes(), day.End.Minutes()
	if start < 0 || end < 0 {
		return slots
	}

	for offset := 0; start+offset+duration <= end; offset += duration {
		slot, err := day.Start.AddMinutes(offset)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}

// AvailableSlots débuts réservables de date: horaires du jour UTC de date
// (jour par défaut si le pro n'a pas d'horaires) moins les débuts réservés, par ordre croissant.
func AvailableSlots(
	hours domain.WorkingHours,
	fallback domain.DaySchedule,
	date time.Time,
	duration int,
	booked []types.TimeString,
) []types.TimeString {
	candidates := GenerateSlots(hours.DayFor(date, fallback), duration)
	if len(booked) == 0 {
		return candidates
	}

	taken := make(map[types.TimeString]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, ok := taken[slot]; !ok {
			available = append(available, slot)
		}
	}

	return available
}

// dropElapsed retire tous les créneaux d'une date passée et ceux d'aujourd'hui déjà commencés
func dropElapsed(slots []types.TimeString, date, now time.Time) []types.TimeString {
	today := domain.TruncateToDay(now)
	day := domain.TruncateToDay(date)

	switch {
	case day.Before(today):
		return make([]types.TimeString, 0)
	case day.After(today):
		return slots
	}

	current := types.NewTimeString(now.UTC())
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.IsBefore(current) {
			result = append(result, slot)
		}
	}
	return result
}
