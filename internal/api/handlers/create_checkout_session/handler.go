package create_checkout_session

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/billing"
)

const (
	msgMissingUserID       = "authentification requise"
	msgProfileNotFound     = "profil introuvable"
	msgNotPro              = "l'abonnement est réservé aux professionnels"
	msgProviderUnavailable = "le service de paiement est indisponible"
)

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

// Handle POST /api/stripe/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /stripe/checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	resp, err := h.service.CreateCheckoutSession(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrProfileNotFound):
			h.logger.Warn("POST /stripe/checkout - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, billing.ErrNotPro):
			h.logger.Warn("POST /stripe/checkout - Not a pro: user_id=%s", userID)
			handlers.RespondForbidden(w, msgNotPro)

		case errors.Is(err, billing.ErrProviderUnavailable):
			h.logger.Error("POST /stripe/checkout - Stripe unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /stripe/checkout - Failed to create session: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /stripe/checkout - Session created: user_id=%s, session_id=%s", userID, resp.SessionID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
