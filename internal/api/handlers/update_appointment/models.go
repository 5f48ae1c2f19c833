package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	updateAppointment "github.com/ekicare/ekicare-api/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest modèle de requête HTTP. Les champs absents restent inchangés.
type UpdateAppointmentRequest struct {
	Status           *string      `json:"status,omitempty"`
	MainSlot         *time.Time   `json:"main_slot,omitempty"`
	AlternativeSlots *[]time.Time `json:"alternative_slots,omitempty"`
	Comment          *string      `json:"comment,omitempty"`
	Address          *string      `json:"address,omitempty"`
	CompteRendu      *string      `json:"compte_rendu,omitempty"`
}

// ToUseCaseRequest convertit la requête HTTP pour le use case.
// Échoue seulement sur un statut inconnu.
func (r *UpdateAppointmentRequest) ToUseCaseRequest(userID, appointmentID uuid.UUID) (*updateAppointment.Request, error) {
	change := domain.AppointmentChange{
		MainSlot:         r.MainSlot,
		AlternativeSlots: r.AlternativeSlots,
		Comment:          r.Comment,
		Address:          r.Address,
		CompteRendu:      r.CompteRendu,
	}

	if r.Status != nil {
		status, err := domain.ParseStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		change.Status = &status
	}

	return &updateAppointment.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
		Change:        change,
	}, nil
}
