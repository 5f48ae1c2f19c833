package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request créneaux d'un pro pour une date
type Request struct {
	ProID           uuid.UUID
	Date            time.Time // calendar date, time of day ignored
	DurationMinutes int       // 0 selects the default duration
}
