package usecase

import (
	"context"
	"log"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/http/middleware"
	"github.com/dealdesk/dealdesk-backend/internal/infra/queue"
)

// AuditTrail appends webhook log rows and, when a publisher is wired, mirrors
// each entry onto the audit exchange. Publish failures never fail a request.
type AuditTrail struct {
	Logs      entity.WebhookLogRepositoryInterface
	Publisher queue.AuditPublisherInterface // nil when AMQP is not configured
}

func NewAuditTrail(logs entity.WebhookLogRepositoryInterface, publisher queue.AuditPublisherInterface) *AuditTrail {
	return &AuditTrail{Logs: logs, Publisher: publisher}
}

// Record appends the entry and reports insert failures to the caller.
func (a *AuditTrail) Record(ctx context.Context, l *entity.WebhookLog) error {
	if err := a.Logs.Insert(ctx, l); err != nil {
		middleware.RecordAuditFailure()
		return err
	}

	a.publish(ctx, l)
	return nil
}

// RecordBestEffort appends the entry but downgrades insert failures to a log
// line, for the sites where the audit row is secondary to the primary action.
func (a *AuditTrail) RecordBestEffort(ctx context.Context, l *entity.WebhookLog) {
	if err := a.Record(ctx, l); err != nil {
		log.Printf("webhook log write failed (action=%s): %v", l.Action, err)
	}
}

func (a *AuditTrail) publish(ctx context.Context, l *entity.WebhookLog) {
	if a.Publisher == nil {
		return
	}

	payload := queue.AuditPayload{
		LogID:       l.ID,
		DealID:      l.DealID,
		Action:      l.Action,
		TriggeredBy: l.TriggeredBy,
		Status:      l.Status,
		Details:     l.Details,
		TriggeredAt: l.TriggeredAt,
	}

	if err := a.Publisher.PublishLog(ctx, payload); err != nil {
		middleware.RecordIntegrationError("rabbitmq")
		log.Printf("audit fanout publish failed (action=%s): %v", l.Action, err)
	}
}
