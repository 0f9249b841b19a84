package usecase

import (
	"context"
	"errors"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
)

type SendOutreachUseCase struct {
	Deals entity.DealRepositoryInterface
	Email EmailService // nil when SMTP is not configured
	Audit *AuditTrail
}

func NewSendOutreachUseCase(deals entity.DealRepositoryInterface, email EmailService, audit *AuditTrail) *SendOutreachUseCase {
	return &SendOutreachUseCase{Deals: deals, Email: email, Audit: audit}
}

// Execute emails the outreach template to the deal's contact. The audit row is
// written only after a successful send.
func (uc *SendOutreachUseCase) Execute(ctx context.Context, dealID, actorEmail string) (*entity.Deal, error) {
	deal, err := uc.Deals.FindByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, entity.ErrDealNotFound) {
			return nil, NewError(KindNotFound, "deal not found: "+dealID, err)
		}
		return nil, NewError(KindUpstream, err.Error(), err)
	}

	if uc.Email == nil {
		return nil, NewError(KindUnavailable, "email service is not configured", nil)
	}

	err = uc.Email.SendOutreach(
		deal.ContactEmail,
		deal.BusinessName,
		deal.Industry,
		deal.ContactName,
		deal.FundingAmountRequested,
	)
	if err != nil {
		middleware.RecordIntegrationError("smtp")
		return nil, NewError(KindUpstream, err.Error(), err)
	}

	middleware.RecordOutreachSent("email")

	entry := entity.NewWebhookLog(&deal.ID, entity.ActionSendOutreach, actorEmail, "sent", map[string]any{
		"recipient":     deal.ContactEmail,
		"business_name": deal.BusinessName,
	})
	uc.Audit.RecordBestEffort(ctx, entry)

	return deal, nil
}
