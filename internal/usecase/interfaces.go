package usecase

import (
	"context"

	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/outbound"
)

type EmailService interface {
	SendOutreach(to, businessName, industry, contactName string, fundingAmount float64) error
}

type WebhookForwarder interface {
	Forward(ctx context.Context, url string, payload outbound.DealPayload) error
}
