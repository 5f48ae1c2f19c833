package domain

import "errors"

var (
	// ErrForbiddenTransition l'acteur ne peut pas passer le rendez-vous au statut demandé
	ErrForbiddenTransition = errors.New("domain: status transition not allowed")

	// ErrForbiddenField l'acteur ne peut pas écrire ce champ dans le statut courant
	ErrForbiddenField = errors.New("domain: field update not allowed")

	ErrUnknownStatus       = errors.New("domain: unknown appointment status")
	ErrUnknownWeekday      = errors.New("domain: unknown weekday")
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")
	ErrInvalidDuration     = errors.New("domain: invalid appointment duration")
)
