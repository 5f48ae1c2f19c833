package update_appointment

import "errors"

var (
	// ErrAppointmentNotFound rendez-vous absent ou appelant non participant
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrForbidden la table des transitions refuse le statut ou un champ
	ErrForbidden = errors.New("update_appointment: change not allowed")

	// ErrInvalidInput valeurs mal formées
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrSlotTaken le nouveau créneau principal est déjà pris
	ErrSlotTaken = errors.New("update_appointment: slot already taken")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("update_appointment: internal error")
)
