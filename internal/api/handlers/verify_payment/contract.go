package verify_payment

import (
	"context"

	"github.com/ekicare/ekicare-api/internal/service/billing/models"
)

type BillingService interface {
	VerifyPayment(ctx context.Context, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
