package update_appointment

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/appointments/models"
	updateAppointment "github.com/ekicare/ekicare-api/internal/usecase/update_appointment"
)

const (
	msgMissingUserID        = "authentification requise"
	msgInvalidAppointmentID = "identifiant de rendez-vous invalide"
	msgInvalidRequestBody   = "corps de requête invalide"
	msgInvalidStatus        = "statut inconnu"
	msgInvalidInput         = "données du rendez-vous invalides"
	msgAppointmentNotFound  = "rendez-vous introuvable"
	msgForbidden            = "modification non autorisée pour ce statut"
	msgSlotTaken            = "ce créneau n'est plus disponible"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	id, err := handlers.PathUUID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// pas de corps: modification vide
	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, id)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid status: id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	appt, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: id=%s, user_id=%s", id, userID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, updateAppointment.ErrForbidden):
			h.logger.Warn("PATCH /appointments/{id} - Change denied: id=%s, user_id=%s, error=%v", id, userID, err)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: id=%s, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateAppointment.ErrSlotTaken):
			h.logger.Warn("PATCH /appointments/{id} - Slot taken: id=%s", id)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: id=%s, status=%s", appt.ID, appt.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(appt))
}
