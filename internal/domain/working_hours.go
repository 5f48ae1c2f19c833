package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ekicare/ekicare-api/pkg/types"
)

// weekdayKeys clés des horaires indexées par time.Weekday
var weekdayKeys = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayKey clé du jour de la semaine (UTC) de date dans WorkingHours
func WeekdayKey(date time.Time) string {
	return weekdayKeys[date.UTC().Weekday()]
}

// IsWeekdayKey key désigne un jour de la semaine
func IsWeekdayKey(key string) bool {
	for _, k := range weekdayKeys {
		if k == key {
			return true
		}
	}
	return false
}

// DaySchedule horaires réservables d'un jour de la semaine
type DaySchedule struct {
	Active bool             `json:"active"`
	Start  types.TimeString `json:"start,omitempty"`
	End    types.TimeString `json:"end,omitempty"`
}

// Validate un jour inactif n'a pas besoin d'horaires, un jour actif exige start < end
func (d DaySchedule) Validate() error {
	if !d.Active {
		return nil
	}
	if err := d.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start: %w", ErrInvalidWorkingHours, err)
	}
	if err := d.End.Validate(); err != nil {
		return fmt.Errorf("%w: end: %w", ErrInvalidWorkingHours, err)
	}
	if !d.Start.IsBefore(d.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWorkingHours, d.Start, d.End)
	}
	return nil
}

// Fits une visite de duration minutes commençant à start tombe sur la grille
// du jour : start est un multiple entier de duration après Start et la visite
// se termine au plus tard à End.
func (d DaySchedule) Fits(start types.TimeString, duration int) bool {
	if !d.Active || duration <= 0 {
		return false
	}
	from, to, at := d.Start.Minutes(), d.End.Minutes(), start.Minutes()
	if from < 0 || to < 0 || at < 0 {
		return false
	}
	return at >= from && at+duration <= to && (at-from)%duration == 0
}

// WorkingHours planning hebdomadaire d'un pro, indexé par nom de jour en minuscules.
// Une map nil signifie que le pro n'a rien configuré : chaque jour est travaillé
// avec les horaires par défaut. Dans une map non nil, un jour absent est chômé.
type WorkingHours map[string]DaySchedule

// IsConfigured le pro a défini son planning
func (w WorkingHours) IsConfigured() bool {
	return w != nil
}

// DayFor horaires du jour de la semaine (UTC) de date.
// fallback est retourné quand le pro n'a aucun planning.
func (w WorkingHours) DayFor(date time.Time, fallback DaySchedule) DaySchedule {
	if w == nil {
		return fallback
	}
	day, ok := w[WeekdayKey(date)]
	if !ok {
		return DaySchedule{}
	}
	return day
}

// IsWorkingDay le jour de la semaine de date est actif
func (w WorkingHours) IsWorkingDay(date time.Time) bool {
	if w == nil {
		return true
	}
	return w[WeekdayKey(date)].Active
}

// Validate vérifie les clés de jours et les horaires de chaque jour
func (w WorkingHours) Validate() error {
	for key, day := range w {
		if !IsWeekdayKey(key) {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, key)
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// Scan implémente sql.Scanner pour la colonne jsonb, NULL laisse une map nil
func (w *WorkingHours) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidWorkingHours, src)
	}

	if string(raw) == "null" {
		*w = nil
		return nil
	}

	hours := WorkingHours{}
	if err := json.Unmarshal(raw, &hours); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWorkingHours, err)
	}
	*w = hours
	return nil
}

// Value implémente driver.Valuer
func (w WorkingHours) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
