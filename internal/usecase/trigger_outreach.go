package usecase

import (
	"context"
	"errors"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/outbound"
)

type TriggerOutreachUseCase struct {
	Deals     entity.DealRepositoryInterface
	Forwarder WebhookForwarder
	Audit     *AuditTrail
}

func NewTriggerOutreachUseCase(deals entity.DealRepositoryInterface, forwarder WebhookForwarder, audit *AuditTrail) *TriggerOutreachUseCase {
	return &TriggerOutreachUseCase{Deals: deals, Forwarder: forwarder, Audit: audit}
}

// Execute forwards the deal to an external automation webhook when a URL is
// supplied, then records the trigger. A failed forward aborts before logging.
func (uc *TriggerOutreachUseCase) Execute(ctx context.Context, dealID, webhookURL, actorEmail string) (*entity.Deal, error) {
	deal, err := uc.Deals.FindByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			return nil, NewError(KindNotFound, "deal not found: "+dealID, err)
		}
		return nil, NewError(KindUpstream, err.Error(), err)
	}

	status := "skipped"
	if webhookURL != "" {
		payload := outbound.DealPayload{
			DealID:                 deal.ID,
			BusinessName:           deal.BusinessName,
			ContactName:            deal.ContactName,
			ContactEmail:           deal.ContactEmail,
			Industry:               deal.Industry,
			FundingAmountRequested: deal.FundingAmountRequested,
			Stage:                  deal.Stage,
			Source:                 deal.Source,
		}

		if err := uc.Forwarder.Forward(ctx, webhookURL, payload); err != nil {
			middleware.RecordIntegrationError("webhook_forward")
			return nil, NewError(KindUpstream, err.Error(), err)
		}

		status = "forwarded"
		middleware.RecordOutreachSent("webhook")
	}

	details := map[string]any{}
	if webhookURL != "" {
		details["webhook_url"] = webhookURL
	}

	entry := entity.NewWebhookLog(&deal.ID, entity.ActionTriggerOutreach, actorEmail, status, details)
	uc.Audit.RecordBestEffort(ctx, entry)

	return deal, nil
}
