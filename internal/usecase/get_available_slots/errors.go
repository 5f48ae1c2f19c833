package get_available_slots

import "errors"

var (
	// ErrProNotFound l'id n'appartient pas à un professionnel
	ErrProNotFound = errors.New("get_available_slots: professional not found")

	// ErrInvalidInput date absente ou durée hors limites
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("get_available_slots: internal error")
)
