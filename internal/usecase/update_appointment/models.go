package update_appointment

import (
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
)

// Request modification partielle d'un rendez-vous par un participant
type Request struct {
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	Change        domain.AppointmentChange
}
