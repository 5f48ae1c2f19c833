package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// Types d'événements webhook traités par la facturation
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventSubscriptionDeleted      = "customer.subscription.deleted"
)

// ErrInvalidSignature l'en-tête Stripe-Signature ne correspond pas au payload
var ErrInvalidSignature = errors.New("stripe client: invalid webhook signature")

// Logger interface du client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config paramètres du compte Stripe
type Config struct {
	SecretKey     string
	WebhookSecret string
	PriceID       string
	SiteURL       string
	// WebhookTolerance âge maximal accepté d'un webhook signé
	WebhookTolerance time.Duration
	// BaseURL remplace l'endpoint de l'API Stripe (tests, stripe-mock)
	BaseURL string
	Timeout time.Duration
}

// Client sessions checkout Stripe et vérification des webhooks
type Client struct {
	sessions         *session.Client
	webhookSecret    string
	webhookTolerance time.Duration
	priceID          string
	siteURL          string
	log              Logger
}

// NewClient crée un client Stripe avec son propre backend, stripe.Key global n'est jamais modifié
func NewClient(cfg Config, log Logger) *Client {
	backendCfg := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripego.Int64(1),
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripego.String(cfg.BaseURL)
		backendCfg.MaxNetworkRetries = stripego.Int64(0)
	}

	return &Client{
		sessions: &session.Client{
			B:   stripego.GetBackendWithConfig(stripego.APIBackend, backendCfg),
			Key: cfg.SecretKey,
		},
		webhookSecret:    cfg.WebhookSecret,
		webhookTolerance: cfg.WebhookTolerance,
		priceID:          cfg.PriceID,
		siteURL:          strings.TrimRight(cfg.SiteURL, "/"),
		log:              log,
	}
}

// CreateCheckoutSession ouvre un checkout d'abonnement pour le pro
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if c.sessions.Key == "" || c.priceID == "" {
		return nil, ErrNotConfigured
	}

	params := &stripego.CheckoutSessionParams{
		Mode:              stripego.String(string(stripego.CheckoutSessionModeSubscription)),
		SuccessURL:        stripego.String(c.siteURL + "/auth/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripego.String(c.siteURL + "/auth/payment"),
		ClientReferenceID: stripego.String(req.UserID),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				Price:    stripego.String(c.priceID),
				Quantity: stripego.Int64(1),
			},
		},
		Metadata: map[string]string{MetadataUserID: req.UserID},
		SubscriptionData: &stripego.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{MetadataUserID: req.UserID},
		},
	}
	if req.Email != "" {
		params.CustomerEmail = stripego.String(req.Email)
	}
	params.Context = ctx

	s, err := c.sessions.New(params)
	if err != nil {
		c.log.Error("Stripe: failed to create checkout session for user=%s: %v", req.UserID, err)
		return nil, mapError(err)
	}

	c.log.Info("Stripe: created checkout session id=%s for user=%s", s.ID, req.UserID)
	return fromStripeSession(s), nil
}

// GetCheckoutSession récupère une session checkout par id
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	if c.sessions.Key == "" {
		return nil, ErrNotConfigured
	}

	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.sessions.Get(id, params)
	if err != nil {
		mapped := mapError(err)
		if errors.Is(mapped, ErrSessionNotFound) {
			c.log.Warn("Stripe: checkout session id=%s not found", id)
		} else {
			c.log.Error("Stripe: failed to get checkout session id=%s: %v", id, err)
		}
		return nil, mapped
	}

	return fromStripeSession(s), nil
}

// ParseWebhookEvent vérifie l'en-tête Stripe-Signature et décode l'événement
func (c *Client) ParseWebhookEvent(payload []byte, signature string) (*Event, error) {
	if c.webhookSecret == "" {
		return nil, ErrNotConfigured
	}

	evt, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                c.webhookTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	event := &Event{
		ID:      evt.ID,
		Type:    string(evt.Type),
		Payload: payload,
	}

	switch event.Type {
	case EventCheckoutSessionCompleted:
		var s stripego.CheckoutSession
		if err := json.Unmarshal(evt.Data.Raw, &s); err != nil {
			return nil, fmt.Errorf("%w: decode checkout session: %w", ErrInvalidRequest, err)
		}
		event.Session = fromStripeSession(&s)
	case EventSubscriptionDeleted:
		var sub stripego.Subscription
		if err := json.Unmarshal(evt.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("%w: decode subscription: %w", ErrInvalidRequest, err)
		}
		event.SubscriptionID = sub.ID
	}

	return event, nil
}

func fromStripeSession(s *stripego.CheckoutSession) *CheckoutSession {
	result := &CheckoutSession{
		ID:                s.ID,
		URL:               s.URL,
		Status:            string(s.Status),
		PaymentStatus:     string(s.PaymentStatus),
		ClientReferenceID: s.ClientReferenceID,
		Metadata:          s.Metadata,
	}
	if s.Customer != nil {
		result.CustomerID = s.Customer.ID
	}
	if s.Subscription != nil {
		result.SubscriptionID = s.Subscription.ID
	}
	return result
}

func mapError(err error) error {
	var stripeErr *stripego.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	switch {
	case stripeErr.Code == stripego.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrSessionNotFound, stripeErr.Msg)
	case stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 && stripeErr.HTTPStatusCode != http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrInvalidRequest, stripeErr.Msg)
	default:
		return fmt.Errorf("%w: %s", ErrUnavailable, stripeErr.Msg)
	}
}
