package profile

import "errors"

var (
	// ErrProNotFound id inconnu ou qui n'appartient pas à un professionnel
	ErrProNotFound = errors.New("profile: professional not found")

	// ErrProfileNotFound l'appelant n'a pas de profil
	ErrProfileNotFound = errors.New("profile: profile not found")

	// ErrAccessDenied un non-pro modifie des horaires
	ErrAccessDenied = errors.New("profile: access denied")

	// ErrInvalidInput horaires mal formés
	ErrInvalidInput = errors.New("profile: invalid input data")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("profile: internal error")
)
