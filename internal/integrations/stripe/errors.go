package stripe

import "errors"

var (
	// ErrSessionNotFound Stripe ne connaît pas la session checkout
	ErrSessionNotFound = errors.New("stripe client: checkout session not found")

	// ErrUnavailable Stripe injoignable ou en erreur serveur
	ErrUnavailable = errors.New("stripe client: service unavailable")

	// ErrInvalidRequest Stripe rejette les paramètres
	ErrInvalidRequest = errors.New("stripe client: invalid request")

	// ErrNotConfigured aucune clé secrète configurée
	ErrNotConfigured = errors.New("stripe client: not configured")
)
