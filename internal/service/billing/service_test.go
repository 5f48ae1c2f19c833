package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/domain"
	billingRepo "github.com/ekicare/ekicare-api/internal/infra/storage/billing"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/integrations/stripe"
	"github.com/ekicare/ekicare-api/internal/service/billing/models"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type mockStripe struct {
	session    *stripe.CheckoutSession
	sessionErr error
	event      *stripe.Event
	eventErr   error
	requests   []stripe.CheckoutRequest
}

func (m *mockStripe) CreateCheckoutSession(ctx context.Context, req stripe.CheckoutRequest) (*stripe.CheckoutSession, error) {
	m.requests = append(m.requests, req)
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return m.session, nil
}

func (m *mockStripe) GetCheckoutSession(ctx context.Context, id string) (*stripe.CheckoutSession, error) {
	return m.session, m.sessionErr
}

func (m *mockStripe) ParseWebhookEvent(payload []byte, signature string) (*stripe.Event, error) {
	return m.event, m.eventErr
}

type mockProfileRepo struct {
	profiles    map[uuid.UUID]*domain.Profile
	activated   []domain.Subscription
	deactivated []string
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) ActivateSubscription(ctx context.Context, sub domain.Subscription) error {
	if _, ok := m.profiles[sub.ProfileID]; !ok {
		return profileRepo.ErrProfileNotFound
	}
	m.activated = append(m.activated, sub)
	return nil
}

func (m *mockProfileRepo) DeactivateSubscription(ctx context.Context, subscriptionID string) error {
	if subscriptionID != "sub_1" {
		return profileRepo.ErrProfileNotFound
	}
	m.deactivated = append(m.deactivated, subscriptionID)
	return nil
}

type mockEventRepo struct{ seen map[string]bool }

func (m *mockEventRepo) RecordEvent(ctx context.Context, event billingRepo.StripeEvent) error {
	if m.seen[event.ID] {
		return billingRepo.ErrDuplicateEvent
	}
	m.seen[event.ID] = true
	return nil
}

type mockTxManager struct{}

func (m *mockTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockMetrics struct{ events []string }

func (m *mockMetrics) ObserveStripeEvent(eventType, outcome string) {
	m.events = append(m.events, eventType+":"+outcome)
}

type fixture struct {
	proID, ownerID uuid.UUID

	stripe   *mockStripe
	profiles *mockProfileRepo
	metrics  *mockMetrics
	svc      *Service
}

func newFixture() *fixture {
	f := &fixture{proID: uuid.New(), ownerID: uuid.New()}

	f.stripe = &mockStripe{}
	f.profiles = &mockProfileRepo{profiles: map[uuid.UUID]*domain.Profile{
		f.proID:   {ID: f.proID, Role: domain.RolePro, Email: "vet@ekicare.test"},
		f.ownerID: {ID: f.ownerID, Role: domain.RoleOwner},
	}}
	f.metrics = &mockMetrics{}
	f.svc = NewService(f.stripe, f.profiles, &mockEventRepo{seen: map[string]bool{}}, &mockTxManager{}, f.metrics, logger.Nop())
	return f
}

func (f *fixture) paidSession(userID uuid.UUID) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:                "cs_1",
		Status:            stripe.SessionStatusComplete,
		PaymentStatus:     stripe.PaymentStatusPaid,
		ClientReferenceID: userID.String(),
		CustomerID:        "cus_1",
		SubscriptionID:    "sub_1",
	}
}

func TestService_CreateCheckoutSession(t *testing.T) {
	f := newFixture()
	f.stripe.session = &stripe.CheckoutSession{ID: "cs_new", URL: "https://checkout.stripe.com/cs_new"}

	resp, err := f.svc.CreateCheckoutSession(context.Background(), f.proID)
	require.NoError(t, err)
	assert.Equal(t, &models.CheckoutResponse{SessionID: "cs_new", URL: "https://checkout.stripe.com/cs_new"}, resp)
	require.Len(t, f.stripe.requests, 1)
	assert.Equal(t, stripe.CheckoutRequest{UserID: f.proID.String(), Email: "vet@ekicare.test"}, f.stripe.requests[0])

	_, err = f.svc.CreateCheckoutSession(context.Background(), f.ownerID)
	assert.ErrorIs(t, err, ErrNotPro)

	_, err = f.svc.CreateCheckoutSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrProfileNotFound)

	f.stripe.sessionErr = stripe.ErrUnavailable
	_, err = f.svc.CreateCheckoutSession(context.Background(), f.proID)
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestService_VerifyPayment(t *testing.T) {
	f := newFixture()
	f.stripe.session = f.paidSession(f.proID)

	resp, err := f.svc.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{UserID: f.proID, SessionID: "cs_1"})
	require.NoError(t, err)
	assert.True(t, resp.Verified)
	assert.Equal(t, "paid", resp.Status)
	assert.Equal(t, []domain.Subscription{{ProfileID: f.proID, CustomerID: "cus_1", SubscriptionID: "sub_1"}}, f.profiles.activated)
}

func TestService_VerifyPayment_Unpaid(t *testing.T) {
	f := newFixture()
	session := f.paidSession(f.proID)
	session.Status = stripe.SessionStatusOpen
	session.PaymentStatus = stripe.PaymentStatusUnpaid
	f.stripe.session = session

	resp, err := f.svc.VerifyPayment(context.Background(), &models.VerifyPaymentRequest{UserID: f.proID, SessionID: "cs_1"})
	require.NoError(t, err)
	assert.False(t, resp.Verified)
	assert.Equal(t, "unpaid", resp.Status)
	assert.Empty(t, f.profiles.activated)
}

func TestService_VerifyPayment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(f *fixture) *models.VerifyPaymentRequest
		wantErr error
	}{
		{
			name: "empty session id",
			setup: func(f *fixture) *models.VerifyPaymentRequest {
				return &models.VerifyPaymentRequest{UserID: f.proID}
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "session of another user",
			setup: func(f *fixture) *models.VerifyPaymentRequest {
				f.stripe.session = f.paidSession(uuid.New())
				return &models.VerifyPaymentRequest{UserID: f.proID, SessionID: "cs_1"}
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "unknown session",
			setup: func(f *fixture) *models.VerifyPaymentRequest {
				f.stripe.sessionErr = stripe.ErrSessionNotFound
				return &models.VerifyPaymentRequest{UserID: f.proID, SessionID: "cs_x"}
			},
			wantErr: ErrSessionNotFound,
		},
		{
			name: "stripe unreachable",
			setup: func(f *fixture) *models.VerifyPaymentRequest {
				f.stripe.sessionErr = stripe.ErrUnavailable
				return &models.VerifyPaymentRequest{UserID: f.proID, SessionID: "cs_1"}
			},
			wantErr: ErrProviderUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.VerifyPayment(context.Background(), tt.setup(f))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.profiles.activated)
		})
	}
}

func TestService_HandleWebhook_CheckoutCompleted(t *testing.T) {
	f := newFixture()
	f.stripe.event = &stripe.Event{
		ID:      "evt_1",
		Type:    stripe.EventCheckoutSessionCompleted,
		Session: f.paidSession(f.proID),
	}

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	require.Len(t, f.profiles.activated, 1)
	assert.Equal(t, f.proID, f.profiles.activated[0].ProfileID)

	// une relivraison est acquittée sans seconde écriture
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Len(t, f.profiles.activated, 1)

	assert.Equal(t, []string{
		"checkout.session.completed:processed",
		"checkout.session.completed:duplicate",
	}, f.metrics.events)
}

func TestService_HandleWebhook_SubscriptionDeleted(t *testing.T) {
	f := newFixture()
	f.stripe.event = &stripe.Event{ID: "evt_2", Type: stripe.EventSubscriptionDeleted, SubscriptionID: "sub_1"}

	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))
	assert.Equal(t, []string{"sub_1"}, f.profiles.deactivated)
}

func TestService_HandleWebhook_Ignored(t *testing.T) {
	f := newFixture()

	f.stripe.event = &stripe.Event{ID: "evt_3", Type: "invoice.paid"}
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))

	f.stripe.event = &stripe.Event{
		ID:      "evt_4",
		Type:    stripe.EventCheckoutSessionCompleted,
		Session: &stripe.CheckoutSession{ID: "cs_2", ClientReferenceID: "not-a-uuid"},
	}
	require.NoError(t, f.svc.HandleWebhook(context.Background(), []byte(`{}`), "sig"))

	assert.Empty(t, f.profiles.activated)
	assert.Equal(t, []string{"invoice.paid:ignored", "checkout.session.completed:ignored"}, f.metrics.events)
}

func TestService_HandleWebhook_BadSignature(t *testing.T) {
	f := newFixture()
	f.stripe.eventErr = stripe.ErrInvalidSignature

	err := f.svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, f.profiles.activated)

	f.stripe.eventErr = errors.New("malformed json")
	err = f.svc.HandleWebhook(context.Background(), []byte(`{`), "sig")
	assert.ErrorIs(t, err, ErrInternal)
}
