package appointments

import "errors"

var (
	// ErrAppointmentNotFound rendez-vous absent ou invisible pour l'appelant
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrProfileNotFound l'appelant n'a pas de profil
	ErrProfileNotFound = errors.New("appointments: profile not found")

	// ErrCannotDelete le participant ne peut pas supprimer ce rendez-vous
	ErrCannotDelete = errors.New("appointments: appointment cannot be deleted")

	// ErrInvalidInput filtre mal formé
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("appointments: internal error")
)
