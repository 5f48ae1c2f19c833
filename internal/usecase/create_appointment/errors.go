package create_appointment

import "errors"

var (
	// ErrInvalidInput requête mal formée
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrNotOwner l'appelant n'est pas propriétaire de chevaux
	ErrNotOwner = errors.New("create_appointment: only owners can book appointments")

	// ErrProNotFound id de pro inconnu ou qui n'est pas un professionnel
	ErrProNotFound = errors.New("create_appointment: professional not found")

	// ErrEquideNotOwned équidé absent ou appartenant à quelqu'un d'autre
	ErrEquideNotOwned = errors.New("create_appointment: equide does not belong to the owner")

	// ErrOutsideWorkingHours le créneau n'est pas sur la grille du pro pour ce jour
	ErrOutsideWorkingHours = errors.New("create_appointment: slot outside working hours")

	// ErrSlotTaken le pro a déjà un rendez-vous sur ce créneau
	ErrSlotTaken = errors.New("create_appointment: slot already taken")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("create_appointment: internal error")
)
