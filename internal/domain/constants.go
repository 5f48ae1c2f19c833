package domain

// Bornes de durée d'un rendez-vous, en minutes
const (
	DefaultDurationMinutes = 60
	MinDurationMinutes     = 5
	MaxDurationMinutes     = 480 // 8 hours
)

// Constantes de validation métier
const (
	MaxAlternativeSlots = 5
	MaxEquidesPerVisit  = 20
	MaxCommentLength    = 2000
	MaxAddressLength    = 500
	MaxReportLength     = 10000
)

// Formats de date et d'heure
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// CalendarGridDays six semaines complètes
const CalendarGridDays = 42

// ClaimingStatuses statuts qui gardent un créneau indisponible pour les autres réservations.
// Doit rester aligné avec l'index unique partiel sur appointments(pro_id, main_slot).
var ClaimingStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRescheduled,
	StatusCompleted,
}

// AllStatuses tous les statuts possibles d'un rendez-vous
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusRejected,
	StatusRescheduled,
	StatusCompleted,
	StatusCanceled,
}
