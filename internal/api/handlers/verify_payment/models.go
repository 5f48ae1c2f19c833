package verify_payment

import (
	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/service/billing/models"
)

// VerifyPaymentRequest modèle de requête HTTP
type VerifyPaymentRequest struct {
	SessionID string `json:"session_id" validate:"required"`
}

func (r *VerifyPaymentRequest) ToServiceRequest(userID uuid.UUID) *models.VerifyPaymentRequest {
	return &models.VerifyPaymentRequest{
		UserID:    userID,
		SessionID: r.SessionID,
	}
}
