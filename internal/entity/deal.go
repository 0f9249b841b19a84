package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrDealNotFound = errors.New("deal not found")

// Deal is a tracked business funding opportunity.
type Deal struct {
	ID                     string    `json:"id"`
	BusinessName           string    `json:"business_name"`
	ContactName            string    `json:"contact_name,omitempty"`
	ContactEmail           string    `json:"contact_email"`
	Industry               string    `json:"industry,omitempty"`
	FundingAmountRequested float64   `json:"funding_amount_requested,omitempty"`
	Description            string    `json:"description,omitempty"`
	WebsiteURL             string    `json:"website_url,omitempty"`
	Stage                  string    `json:"stage"`  // free-text status, e.g. "submitted"
	Source                 string    `json:"source"` // free-text origin, e.g. "google_form"
	CreatedAt              time.Time `json:"created_at"`
}

// DealPatch is a partial update: nil fields are left untouched.
type DealPatch struct {
	BusinessName           *string  `json:"business_name"`
	ContactName            *string  `json:"contact_name"`
	ContactEmail           *string  `json:"contact_email"`
	Industry               *string  `json:"industry"`
	FundingAmountRequested *float64 `json:"funding_amount_requested"`
	Description            *string  `json:"description"`
	WebsiteURL             *string  `json:"website_url"`
	Stage                  *string  `json:"stage"`
	Source                 *string  `json:"source"`
}

func (p *DealPatch) IsEmpty() bool {
	return p.BusinessName == nil && p.ContactName == nil && p.ContactEmail == nil &&
		p.Industry == nil && p.FundingAmountRequested == nil && p.Description == nil &&
		p.WebsiteURL == nil && p.Stage == nil && p.Source == nil
}

// Factory
func NewDeal(businessName, contactName, contactEmail, industry, description, websiteURL, stage, source string, fundingAmount float64) (*Deal, error) {
	if stage == "" {
		stage = "submitted"
	}
	if source == "" {
		source = "api"
	}

	deal := &Deal{
		ID:                     uuid.New().String(),
		BusinessName:           businessName,
		ContactName:            contactName,
		ContactEmail:           contactEmail,
		Industry:               industry,
		FundingAmountRequested: fundingAmount,
		Description:            description,
		WebsiteURL:             websiteURL,
		Stage:                  stage,
		Source:                 source,
		CreatedAt:              time.Now(),
	}

	if err := deal.Validate(); err != nil {
		return nil, err
	}

	return deal, nil
}

func (d *Deal) Validate() error {
	if d.BusinessName == "" {
		return errors.New("business_name is required")
	}
	if d.ContactEmail == "" {
		return errors.New("contact_email is required")
	}
	return nil
}

type DealRepositoryInterface interface {
	List(ctx context.Context) ([]*Deal, error)
	FindByID(ctx context.Context, id string) (*Deal, error)
	Create(ctx context.Context, d *Deal) error
	Update(ctx context.Context, id string, patch *DealPatch) (*Deal, error)
	Delete(ctx context.Context, id string) error
}
