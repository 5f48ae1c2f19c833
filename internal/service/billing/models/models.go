package models

import "github.com/google/uuid"

// CheckoutResponse session vers laquelle le front redirige
type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// VerifyPaymentRequest session renvoyée sur l'URL de succès
type VerifyPaymentRequest struct {
	UserID    uuid.UUID
	SessionID string
}

// VerifyPaymentResponse résultat de la vérification du paiement
type VerifyPaymentResponse struct {
	Verified bool   `json:"verified"`
	Status   string `json:"status"`
}
