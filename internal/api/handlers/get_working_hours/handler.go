package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/service/profile"
)

const (
	msgInvalidProID = "identifiant de professionnel invalide"
	msgProNotFound  = "professionnel introuvable"
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

// Handle GET /api/pros/{proId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := handlers.PathUUID(r, "proId")
	if err != nil {
		h.logger.Warn("GET /pros/{id}/working-hours - Invalid pro ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	resp, err := h.service.GetSchedule(r.Context(), proID)
	if err != nil {
		if errors.Is(err, profile.ErrProNotFound) {
			h.logger.Warn("GET /pros/{id}/working-hours - Pro not found: pro_id=%s", proID)
			handlers.RespondNotFound(w, msgProNotFound)
			return
		}
		h.logger.Error("GET /pros/{id}/working-hours - Failed to get working hours: pro_id=%s, error=%v", proID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /pros/{id}/working-hours - Working hours retrieved: pro_id=%s, configured=%t", proID, resp.Configured)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
