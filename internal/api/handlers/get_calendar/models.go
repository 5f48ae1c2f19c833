package get_calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	getCalendar "github.com/ekicare/ekicare-api/internal/usecase/get_calendar"
)

// CalendarResponse modèle de réponse HTTP
type CalendarResponse struct {
	ProID      uuid.UUID     `json:"pro_id"`
	Month      string        `json:"month"`
	Configured bool          `json:"configured"`
	Days       []CalendarDay `json:"days"`
}

// CalendarDay une case de la grille du mois
type CalendarDay struct {
	Date           string `json:"date"`
	InCurrentMonth bool   `json:"in_current_month"`
	IsToday        bool   `json:"is_today"`
	IsPast         bool   `json:"is_past"`
	IsWorkingDay   bool   `json:"is_working_day"`
	IsSelected     bool   `json:"is_selected"`
}

func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = CalendarDay{
			Date:           d.Date.Format(domain.DateFormat),
			InCurrentMonth: d.InCurrentMonth,
			IsToday:        d.IsToday,
			IsPast:         d.IsPast,
			IsWorkingDay:   d.IsWorkingDay,
			IsSelected:     d.IsSelected,
		}
	}

	return &CalendarResponse{
		ProID:      resp.ProID,
		Month:      resp.Month.Format(domain.MonthFormat),
		Configured: resp.Configured,
		Days:       days,
	}
}

// ToUseCaseRequest parse month (YYYY-MM) et selected (YYYY-MM-DD), tous deux optionnels
func ToUseCaseRequest(proID uuid.UUID, monthStr, selectedStr string) (*getCalendar.Request, error) {
	req := &getCalendar.Request{ProID: proID}

	if monthStr != "" {
		month, err := time.Parse(domain.MonthFormat, monthStr)
		if err != nil {
			return nil, err
		}
		req.Month = month
	}

	if selectedStr != "" {
		selected, err := time.Parse(domain.DateFormat, selectedStr)
		if err != nil {
			return nil, err
		}
		req.Selected = &selected
	}

	return req, nil
}
