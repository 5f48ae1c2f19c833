package get_calendar

import (
	"errors"
	"net/http"

	"github.com/ekicare/ekicare-api/internal/api/handlers"
	"github.com/ekicare/ekicare-api/internal/domain"
	getCalendar "github.com/ekicare/ekicare-api/internal/usecase/get_calendar"
)

const (
	msgInvalidProID  = "identifiant de professionnel invalide"
	msgInvalidParams = "paramètres invalides, attendu month=AAAA-MM et selected=AAAA-MM-JJ"
	msgProNotFound   = "professionnel introuvable"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/pros/{proId}/calendar
// Query params: month (optionnel, YYYY-MM), selected (optionnel, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := handlers.PathUUID(r, "proId")
	if err != nil {
		h.logger.Warn("GET /pros/{id}/calendar - Invalid pro ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(proID, query.Get("month"), query.Get("selected"))
	if err != nil {
		h.logger.Warn("GET /pros/{id}/calendar - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrProNotFound):
			h.logger.Warn("GET /pros/{id}/calendar - Pro not found: pro_id=%s", proID)
			handlers.RespondNotFound(w, msgProNotFound)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /pros/{id}/calendar - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /pros/{id}/calendar - Failed to build calendar: pro_id=%s, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /pros/{id}/calendar - Calendar built: pro_id=%s, month=%s", proID, resp.Month.Format(domain.MonthFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
