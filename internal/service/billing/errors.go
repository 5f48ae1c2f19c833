package billing

import "errors"

var (
	// ErrInvalidSignature le payload du webhook n'est pas signé par Stripe
	ErrInvalidSignature = errors.New("billing: invalid webhook signature")

	// ErrProfileNotFound l'appelant n'a pas de profil
	ErrProfileNotFound = errors.New("billing: profile not found")

	// ErrNotPro un propriétaire tente de s'abonner
	ErrNotPro = errors.New("billing: only professionals can subscribe")

	// ErrSessionNotFound session checkout inconnue de Stripe
	ErrSessionNotFound = errors.New("billing: checkout session not found")

	// ErrAccessDenied la session appartient à un autre utilisateur
	ErrAccessDenied = errors.New("billing: access denied")

	// ErrInvalidInput requête mal formée
	ErrInvalidInput = errors.New("billing: invalid input data")

	// ErrProviderUnavailable Stripe injoignable
	ErrProviderUnavailable = errors.New("billing: payment provider unavailable")

	// ErrInternal erreur de stockage
	ErrInternal = errors.New("billing: internal error")
)
