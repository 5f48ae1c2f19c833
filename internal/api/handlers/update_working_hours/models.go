package update_working_hours

import (
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/internal/service/profile/models"
)

// UpdateWorkingHoursRequest modèle de requête HTTP, jours indexés par nom de jour en minuscules
type UpdateWorkingHoursRequest struct {
	WorkingHours domain.WorkingHours `json:"working_hours" validate:"required"`
}

func (r *UpdateWorkingHoursRequest) ToServiceRequest(userID uuid.UUID) *models.UpdateWorkingHoursRequest {
	return &models.UpdateWorkingHoursRequest{
		UserID: userID,
		Hours:  r.WorkingHours,
	}
}
