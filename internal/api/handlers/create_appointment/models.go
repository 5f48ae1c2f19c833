package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/ekicare/ekicare-api/internal/usecase/create_appointment"
)

// CreateAppointmentRequest modèle de requête HTTP
type CreateAppointmentRequest struct {
	ProID            string      `json:"pro_id" validate:"required,uuid"`
	EquideIDs        []string    `json:"equide_ids" validate:"required,min=1,dive,uuid"`
	MainSlot         time.Time   `json:"main_slot" validate:"required"`
	AlternativeSlots []time.Time `json:"alternative_slots"`
	Comment          string      `json:"comment"`
	Address          *string     `json:"address,omitempty"`
	DurationMinutes  int         `json:"duration_minutes" validate:"gte=0"`
}

// ToUseCaseRequest convertit la requête HTTP pour le use case.
// Les ids sont déjà vérifiés par le validator.
func (r *CreateAppointmentRequest) ToUseCaseRequest(ownerID uuid.UUID) (*createAppointment.Request, error) {
	proID, err := uuid.Parse(r.ProID)
	if err != nil {
		return nil, err
	}

	equideIDs := make([]uuid.UUID, 0, len(r.EquideIDs))
	for _, raw := range r.EquideIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		equideIDs = append(equideIDs, id)
	}

	return &createAppointment.Request{
		OwnerID:          ownerID,
		ProID:            proID,
		EquideIDs:        equideIDs,
		MainSlot:         r.MainSlot,
		AlternativeSlots: r.AlternativeSlots,
		Comment:          r.Comment,
		Address:          r.Address,
		DurationMinutes:  r.DurationMinutes,
	}, nil
}
