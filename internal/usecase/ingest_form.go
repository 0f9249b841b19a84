package usecase

import (
	"context"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
)

// FormSubmissionInput is the allow-listed field set accepted from form webhooks.
// Source and stage are forced server-side regardless of what the form sends.
type FormSubmissionInput struct {
	BusinessName           string  `json:"business_name"`
	ContactName            string  `json:"contact_name"`
	ContactEmail           string  `json:"contact_email"`
	Industry               string  `json:"industry"`
	FundingAmountRequested float64 `json:"funding_amount_requested"`
	Description            string  `json:"description"`
	WebsiteURL             string  `json:"website_url"`
}

type IngestFormSubmissionUseCase struct {
	Deals entity.DealRepositoryInterface
	Audit *AuditTrail
}

func NewIngestFormSubmissionUseCase(deals entity.DealRepositoryInterface, audit *AuditTrail) *IngestFormSubmissionUseCase {
	return &IngestFormSubmissionUseCase{Deals: deals, Audit: audit}
}

func (uc *IngestFormSubmissionUseCase) Execute(ctx context.Context, input FormSubmissionInput) (*entity.Deal, error) {
	deal, err := entity.NewDeal(
		input.BusinessName,
		input.ContactName,
		input.ContactEmail,
		input.Industry,
		input.Description,
		input.WebsiteURL,
		"submitted",
		"google_form",
		input.FundingAmountRequested,
	)
	if err != nil {
		return nil, NewError(KindValidation, err.Error(), err)
	}

	if err := uc.Deals.Create(ctx, deal); err != nil {
		return nil, NewError(KindUpstream, err.Error(), err)
	}

	middleware.RecordFormSubmission()

	entry := entity.NewWebhookLog(&deal.ID, entity.ActionFormSubmission, "google_form", "received", map[string]any{
		"business_name": deal.BusinessName,
	})
	uc.Audit.RecordBestEffort(ctx, entry)

	return deal, nil
}
