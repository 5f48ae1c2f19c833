package stripe_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/service/billing"
)

const (
	signatureHeader = "Stripe-Signature"

	// maxPayloadBytes les événements Stripe restent bien en dessous
	maxPayloadBytes = 1 << 20
)

const (
	msgUnreadableBody   = "corps de requête illisible"
	msgMissingSignature = "signature Stripe manquante"
	msgInvalidSignature = "signature Stripe invalide"
)

// WebhookResponse accusé de réception renvoyé à Stripe
type WebhookResponse struct {
	Received bool `json:"received"`
}

type Handler struct {
	service BillingService
	logger  Logger
}

func NewHandler(service BillingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/stripe/webhook
// Le corps brut sert à vérifier la signature, il n'est donc pas décodé ici.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	signature := r.Header.Get(signatureHeader)
	if signature == "" {
		h.logger.Warn("POST /stripe/webhook - Missing signature header")
		handlers.RespondBadRequest(w, msgMissingSignature)
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /stripe/webhook - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, signature); err != nil {
		if errors.Is(err, billing.ErrInvalidSignature) {
			h.logger.Warn("POST /stripe/webhook - Invalid signature")
			handlers.RespondBadRequest(w, msgInvalidSignature)
			return
		}
		// Stripe réessaie sur les 5xx
		h.logger.Error("POST /stripe/webhook - Failed to handle event: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true})
}
