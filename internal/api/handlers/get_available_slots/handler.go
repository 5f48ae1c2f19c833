package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	getAvailableSlots "github.com/ekicare/ekicare-api/internal/usecase/get_available_slots"
)

const (
	msgInvalidProID  = "identifiant de professionnel invalide"
	msgMissingDate   = "la date est obligatoire"
	msgInvalidParams = "paramètres invalides, attendu date=AAAA-MM-JJ et duration en minutes"
	msgInvalidInput  = "durée hors limites"
	msgProNotFound   = "professionnel introuvable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/pros/{proId}/available-slots
// Query params: date (obligatoire, YYYY-MM-DD), duration (optionnel, minutes)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := handlers.PathUUID(r, "proId")
	if err != nil {
		h.logger.Warn("GET /pros/{id}/available-slots - Invalid pro ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /pros/{id}/available-slots - Missing date: pro_id=%s", proID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(proID, dateStr, query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /pros/{id}/available-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	day, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrProNotFound):
			h.logger.Warn("GET /pros/{id}/available-slots - Pro not found: pro_id=%s", proID)
			handlers.RespondNotFound(w, msgProNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /pros/{id}/available-slots - Invalid input: pro_id=%s, error=%v", proID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /pros/{id}/available-slots - Failed to get slots: pro_id=%s, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pros/{id}/available-slots - Slots retrieved: pro_id=%s, date=%s, slots_count=%d",
		proID, dateStr, len(day.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromDomainDaySlots(day))
}
