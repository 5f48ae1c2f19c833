package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	billingRepo "github.com/ekicare/ekicare-api/internal/infra/storage/billing"
	"github.com/ekicare/ekicare-api/internal/integrations/stripe"
)

// StripeClient sessions checkout et vérification des webhooks
type StripeClient interface {
	CreateCheckoutSession(ctx context.Context, req stripe.CheckoutRequest) (*stripe.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error)
}

// ProfileRepository état d'abonnement des pros
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ActivateSubscription(ctx context.Context, sub domain.Subscription) error
	DeactivateSubscription(ctx context.Context, subscriptionID string) error
}

// EventRepository événements webhook déjà traités
type EventRepository interface {
	RecordEvent(ctx context.Context, event billingRepo.StripeEvent) error
}

// TransactionManager interface pour les transactions
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics compteurs des webhooks
type Metrics interface {
	ObserveStripeEvent(eventType, outcome string)
}

// Logger interface pour le logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
