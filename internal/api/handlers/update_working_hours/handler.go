package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/profile"
)

const (
	msgMissingUserID      = "authentification requise"
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidHours       = "horaires invalides, attendu HH:MM avec début avant fin"
	msgProfileNotFound    = "profil introuvable"
	msgNotPro             = "réservé aux professionnels"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/profile/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /profile/working-hours - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateWorkingHours(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, profile.ErrInvalidInput):
			h.logger.Warn("PUT /profile/working-hours - Invalid working hours: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, profile.ErrProfileNotFound):
			h.logger.Warn("PUT /profile/working-hours - Profile not found: user_id=%s", userID)
			handlers.RespondNotFound(w, msgProfileNotFound)

		case errors.Is(err, profile.ErrAccessDenied):
			h.logger.Warn("PUT /profile/working-hours - Not a pro: user_id=%s", userID)
			handlers.RespondForbidden(w, msgNotPro)

		default:
			h.logger.Error("PUT /profile/working-hours - Failed to update working hours: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile/working-hours - Working hours updated: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
