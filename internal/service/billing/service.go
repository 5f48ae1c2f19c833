package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/domain"
	billingRepo "github.com/ekicare/ekicare-api/internal/infra/storage/billing"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/integrations/stripe"
	"github.com/ekicare/ekicare-api/internal/service/billing/models"
)

// issues des webhooks remontées aux métriques
const (
	outcomeProcessed = "processed"
	outcomeDuplicate = "duplicate"
	outcomeIgnored   = "ignored"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// Service abonnements des pros via Stripe checkout
type Service struct {
	stripe      StripeClient
	profileRepo ProfileRepository
	eventRepo   EventRepository
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
}

// NewService crée le service de facturation
func NewService(
	stripe StripeClient,
	profileRepo ProfileRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		stripe:      stripe,
		profileRepo: profileRepo,
		eventRepo:   eventRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateCheckoutSession ouvre un checkout d'abonnement pour le pro appelant
func (s *Service) CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error) {
	s.logger.Info("CreateCheckoutSession: user=%s", userID)

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("CreateCheckoutSession: profile id=%s not found", userID)
			return nil, ErrProfileNotFound
		}
		s.logger.Error("CreateCheckoutSession: repository error for profile id=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: CreateCheckoutSession - repository error: %w", ErrInternal, err)
	}

	if !profile.IsPro() {
		s.logger.Warn("CreateCheckoutSession: profile id=%s is not a pro", userID)
		return nil, ErrNotPro
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, stripe.CheckoutRequest{
		UserID: userID.String(),
		Email:  profile.Email,
	})
	if err != nil {
		s.logger.Error("CreateCheckoutSession: stripe error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	s.logger.Info("CreateCheckoutSession: session id=%s created for user=%s", session.ID, userID)
	return &models.CheckoutResponse{SessionID: session.ID, URL: session.URL}, nil
}

// VerifyPayment vérifie la session de retour du navigateur et active le pro si elle est payée
func (s *Service) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error) {
	s.logger.Info("VerifyPayment: user=%s, session=%s", req.UserID, req.SessionID)

	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}

	session, err := s.stripe.GetCheckoutSession(ctx, req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, stripe.ErrSessionNotFound), errors.Is(err, stripe.ErrInvalidRequest):
			s.logger.Warn("VerifyPayment: session id=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("VerifyPayment: stripe error for session id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	if session.OwnerID() != req.UserID.String() {
		s.logger.Warn("VerifyPayment: session id=%s belongs to %q, not user=%s",
			session.ID, session.OwnerID(), req.UserID)
		return nil, ErrAccessDenied
	}

	if !session.IsPaid() {
		s.logger.Info("VerifyPayment: session id=%s not paid yet (status=%s, payment_status=%s)",
			session.ID, session.Status, session.PaymentStatus)
		return &models.VerifyPaymentResponse{Verified: false, Status: session.PaymentStatus}, nil
	}

	if err := s.activate(ctx, req.UserID, session); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("VerifyPayment: failed to activate user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: VerifyPayment - activate: %w", ErrInternal, err)
	}

	s.logger.Info("VerifyPayment: user=%s subscribed", req.UserID)
	return &models.VerifyPaymentResponse{Verified: true, Status: session.PaymentStatus}, nil
}

// HandleWebhook vérifie puis applique un événement Stripe. Chaque id d'événement est appliqué au plus une fois.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripe.ParseWebhookEvent(payload, signature)
	if err != nil {
		if errors.Is(err, stripe.ErrInvalidSignature) {
			s.logger.Warn("HandleWebhook: %v", err)
			s.metrics.ObserveStripeEvent("unknown", outcomeRejected)
			return ErrInvalidSignature
		}
		s.logger.Error("HandleWebhook: failed to parse event: %v", err)
		s.metrics.ObserveStripeEvent("unknown", outcomeFailed)
		return fmt.Errorf("%w: HandleWebhook - parse: %w", ErrInternal, err)
	}

	s.logger.Info("HandleWebhook: event id=%s type=%s", event.ID, event.Type)

	outcome := outcomeProcessed
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.eventRepo.RecordEvent(txCtx, billingRepo.StripeEvent{ID: event.ID, Type: event.Type, Payload: event.Payload})
		if errors.Is(err, billingRepo.ErrDuplicateEvent) {
			outcome = outcomeDuplicate
			return nil
		}
		if err != nil {
			return err
		}

		applied, err := s.apply(txCtx, event)
		if err != nil {
			return err
		}
		if !applied {
			outcome = outcomeIgnored
		}
		return nil
	})

	if err != nil {
		s.logger.Error("HandleWebhook: event id=%s failed: %v", event.ID, err)
		s.metrics.ObserveStripeEvent(event.Type, outcomeFailed)
		return fmt.Errorf("%w: HandleWebhook - event %s: %w", ErrInternal, event.ID, err)
	}

	s.metrics.ObserveStripeEvent(event.Type, outcome)
	s.logger.Info("HandleWebhook: event id=%s %s", event.ID, outcome)
	return nil
}

// apply retourne false pour les événements sans effet
func (s *Service) apply(ctx context.Context, event *stripe.Event) (bool, error) {
	switch event.Type {
	case stripe.EventCheckoutSessionCompleted:
		if event.Session == nil {
			return false, nil
		}
		userID, err := uuid.Parse(event.Session.OwnerID())
		if err != nil {
			s.logger.Warn("HandleWebhook: session id=%s has no valid user reference %q",
				event.Session.ID, event.Session.OwnerID())
			return false, nil
		}
		err = s.activate(ctx, userID, event.Session)
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("HandleWebhook: profile id=%s not found", userID)
			return false, nil
		}
		return err == nil, err

	case stripe.EventSubscriptionDeleted:
		if event.SubscriptionID == "" {
			return false, nil
		}
		err := s.profileRepo.DeactivateSubscription(ctx, event.SubscriptionID)
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("HandleWebhook: no profile holds subscription id=%s", event.SubscriptionID)
			return false, nil
		}
		return err == nil, err
	}

	return false, nil
}

func (s *Service) activate(ctx context.Context, userID uuid.UUID, session *stripe.CheckoutSession) error {
	return s.profileRepo.ActivateSubscription(ctx, domain.Subscription{
		ProfileID:      userID,
		CustomerID:     session.CustomerID,
		SubscriptionID: session.SubscriptionID,
	})
}
