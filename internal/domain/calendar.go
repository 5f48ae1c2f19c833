package domain

import "time"

// CalendarDay une case de la vue mensuelle
type CalendarDay struct {
	Date           time.Time
	InCurrentMonth bool
	IsToday        bool
	IsPast         bool
	IsWorkingDay   bool
	IsSelected     bool
}

// BuildMonthGrid retourne six semaines de jours à partir du lundi précédant
// (ou égal au) premier jour du mois. Toutes les dates sont à minuit UTC, selected peut être nil.
func BuildMonthGrid(month, today time.Time, selected *time.Time, hours WorkingHours) []CalendarDay {
	first := FirstOfMonth(month)
	offset := (int(first.Weekday()) + 6) % 7 // days since Monday
	start := first.AddDate(0, 0, -offset)

	today = TruncateToDay(today)
	var selectedDay time.Time
	if selected != nil {
		selectedDay = TruncateToDay(*selected)
	}

	grid := make([]CalendarDay, 0, CalendarGridDays)
	for i := 0; i < CalendarGridDays; i++ {
		date := start.AddDate(0, 0, i)
		grid = append(grid, CalendarDay{
			Date:           date,
			InCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			IsToday:        date.Equal(today),
			IsPast:         date.Before(today),
			IsWorkingDay:   hours.IsWorkingDay(date),
			IsSelected:     selected != nil && date.Equal(selectedDay),
		})
	}

	return grid
}

// FirstOfMonth minuit UTC du premier jour du mois de t
func FirstOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
