package create_appointment

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/appointments/models"
	createAppointment "github.com/ekicare/ekicare-api/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidInput       = "données du rendez-vous invalides"
	msgMissingUserID      = "authentification requise"
	msgNotOwner           = "seuls les propriétaires peuvent prendre rendez-vous"
	msgEquideNotOwned     = "un des équidés ne vous appartient pas"
	msgProNotFound        = "professionnel introuvable"
	msgSlotTaken          = "ce créneau n'est plus disponible"
	msgOutsideHours       = "ce créneau est en dehors des horaires du professionnel"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	appt, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: pro_id=%s, slot=%s", req.ProID, req.MainSlot)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrNotOwner):
			h.logger.Warn("POST /appointments - Not an owner: user_id=%s", userID)
			handlers.RespondForbidden(w, msgNotOwner)

		case errors.Is(err, createAppointment.ErrEquideNotOwned):
			h.logger.Warn("POST /appointments - Equide not owned: user_id=%s, error=%v", userID, err)
			handlers.RespondForbidden(w, msgEquideNotOwned)

		case errors.Is(err, createAppointment.ErrProNotFound):
			h.logger.Warn("POST /appointments - Pro not found: pro_id=%s", req.ProID)
			handlers.RespondNotFound(w, msgProNotFound)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: pro_id=%s, slot=%s", req.ProID, req.MainSlot)
			handlers.RespondConflict(w, msgSlotTaken)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, owner_id=%s, pro_id=%s",
		appt.ID, appt.OwnerID, appt.ProID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(appt))
}
