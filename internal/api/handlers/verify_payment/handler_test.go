package verify_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/service/billing"
	"github.com/ekicare/ekicare-api/internal/service/billing/models"
	"github.com/ekicare/ekicare-api/pkg/logger"
)

type fakeService struct {
	got  *models.VerifyPaymentRequest
	resp *models.VerifyPaymentResponse
	err  error
}

func (f *fakeService) VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error) {
	f.got = req
	return f.resp, f.err
}

func doRequest(svc *fakeService, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-payment", strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{resp: &models.VerifyPaymentResponse{Verified: true, Status: "paid"}}
	userID := uuid.New()

	rec := doRequest(svc, userID, `{"session_id":"cs_test_1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verified":true,"status":"paid"}`, rec.Body.String())
	assert.Equal(t, &models.VerifyPaymentRequest{UserID: userID, SessionID: "cs_test_1"}, svc.got)
}

func TestHandler_Handle_Unpaid(t *testing.T) {
	svc := &fakeService{resp: &models.VerifyPaymentResponse{Verified: false, Status: "unpaid"}}

	rec := doRequest(svc, uuid.New(), `{"session_id":"cs_test_1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"verified":false,"status":"unpaid"}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	valid := `{"session_id":"cs_test_1"}`

	tests := []struct {
		name       string
		noUser     bool
		body       string
		err        error
		wantStatus int
	}{
		{name: "unauthenticated", noUser: true, body: valid, wantStatus: http.StatusUnauthorized},
		{name: "missing session id", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "blank session id", body: valid, err: billing.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "unknown session", body: valid, err: billing.ErrSessionNotFound, wantStatus: http.StatusNotFound},
		{name: "session of another user", body: valid, err: billing.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "no profile", body: valid, err: billing.ErrProfileNotFound, wantStatus: http.StatusNotFound},
		{name: "stripe down", body: valid, err: billing.ErrProviderUnavailable, wantStatus: http.StatusBadGateway},
		{name: "internal", body: valid, err: billing.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			if tt.noUser {
				userID = uuid.Nil
			}
			rec := doRequest(&fakeService{err: tt.err}, userID, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
