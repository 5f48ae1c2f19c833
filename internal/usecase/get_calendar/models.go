package get_calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// Request vue mensuelle du calendrier d'un pro
type Request struct {
	ProID    uuid.UUID
	Month    time.Time  // zero value selects the current month
	Selected *time.Time // optional highlighted date
}

// Response 42 jours à partir d'un lundi
type Response struct {
	ProID      uuid.UUID
	Month      time.Time // first day of the displayed month
	Configured bool      // false when the pro has no working hours and every day is open
	Days       []domain.CalendarDay
}
