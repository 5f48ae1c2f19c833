package create_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request rendez-vous pris par un propriétaire
type Request struct {
	OwnerID          uuid.UUID
	ProID            uuid.UUID
	EquideIDs        []uuid.UUID
	MainSlot         time.Time
	AlternativeSlots []time.Time
	Comment          string
	Address          *string
	DurationMinutes  int // 0 selects the default duration
}
