package verify_payment

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/billing"
)

const (
	msgMissingUserID       = "authentification requise"
	msgInvalidRequestBody  = "session_id obligatoire"
	msgSessionNotFound     = "session de paiement introuvable"
	msgAccessDenied        = "cette session de paiement ne vous appartient pas"
	msgProfileNotFound     = "profil introuvable"
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

// Handle POST /api/auth/verify-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /auth/verify-payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verify-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.VerifyPayment(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrInvalidInput):
			h.logger.Warn("POST /auth/verify-payment - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, billing.ErrSessionNotFound):
			h.logger.Warn("POST /auth/verify-payment - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, billing.ErrAccessDenied):
			h.logger.Warn("POST /auth/verify-payment - Session of another user: user_id=%s, session_id=%s", userID, req.SessionID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, billing.ErrProfileNotFound):
			h.logger.Warn("POST /auth/verify-payment - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, billing.ErrProviderUnavailable):
			h.logger.Error("POST /auth/verify-payment - Stripe unavailable: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondBadGateway(w, msgProviderUnavailable)

		default:
			h.logger.Error("POST /auth/verify-payment - Failed to verify payment: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/verify-payment - Payment checked: user_id=%s, verified=%t, status=%s",
		userID, resp.Verified, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
