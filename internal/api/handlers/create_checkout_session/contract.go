package create_checkout_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/ekicare/ekicare-api/internal/service/billing/models"
)

type BillingService interface {
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (*models.CheckoutResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
