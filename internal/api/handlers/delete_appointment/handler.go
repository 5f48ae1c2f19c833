package delete_appointment

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/appointments"
)

const (
	msgMissingUserID        = "authentification requise"
	msgInvalidAppointmentID = "identifiant de rendez-vous invalide"
	msgAppointmentNotFound  = "rendez-vous introuvable"
	msgCannotDelete         = "seul le propriétaire peut supprimer une demande en attente"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: id=%s, user_id=%s", id, userID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrCannotDelete):
			h.logger.Warn("DELETE /appointments/{id} - Deletion denied: id=%s, user_id=%s", id, userID)
			handlers.RespondForbidden(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to delete appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment deleted: id=%s, user_id=%s", id, userID)
	w.WriteHeader(http.StatusNoContent)
}
