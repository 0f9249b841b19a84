package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// AuditPayload mirrors one webhook log entry onto the audit exchange.
type AuditPayload struct {
	LogID       string         `json:"log_id"`
	DealID      *string        `json:"deal_id,omitempty"`
	Action      string         `json:"action"`
	TriggeredBy string         `json:"triggered_by"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details,omitempty"`
	TriggeredAt time.Time      `json:"triggered_at"`
}

type AuditPublisherInterface interface {
	PublishLog(ctx context.Context, payload AuditPayload) error
}

type AuditPublisher struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewAuditPublisher(conn *amqp.Connection, ch *amqp.Channel) *AuditPublisher {
	return &AuditPublisher{Conn: conn, Ch: ch}
}

func (p *AuditPublisher) PublishLog(ctx context.Context, payload AuditPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)

	if err != nil {
		return fmt.Errorf("failed to publish audit event: %w", err)
	}

	return nil
}
