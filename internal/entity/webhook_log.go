package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Known action tags. The column is free text, these are the ones this service writes.
const (
	ActionSendOutreach     = "send_outreach"
	ActionFormSubmission   = "form_submission"
	ActionOutreachExternal = "outreach_external"
	ActionTriggerOutreach  = "trigger_outreach"
)

// TriggeredByExternal is the synthetic actor recorded for unauthenticated sources.
const TriggeredByExternal = "external_webhook"

// WebhookLog is one append-only audit row. Never updated or deleted.
type WebhookLog struct {
	ID          string         `json:"id"`
	DealID      *string        `json:"deal_id,omitempty"` // nullable: external events may carry no deal
	Action      string         `json:"action"`
	TriggeredBy string         `json:"triggered_by"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
	TriggeredAt time.Time      `json:"triggered_at"`

	// Deal is populated by the joined listing when the referenced deal still exists.
	Deal *Deal `json:"deal,omitempty"`
}

func NewWebhookLog(dealID *string, action, triggeredBy, status string, details map[string]any) *WebhookLog {
	return &WebhookLog{
		ID:          uuid.New().String(),
		DealID:      dealID,
		Action:      action,
		TriggeredBy: triggeredBy,
		Status:      status,
		Details:     details,
		TriggeredAt: time.Now(),
	}
}

type WebhookLogRepositoryInterface interface {
	Insert(ctx context.Context, l *WebhookLog) error
	ListRecent(ctx context.Context, limit int) ([]*WebhookLog, error)
}
