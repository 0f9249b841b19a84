package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type WebhookLogRepository struct {
	DB *sql.DB
}

func NewWebhookLogRepository(db *sql.DB) *WebhookLogRepository {
	return &WebhookLogRepository{DB: db}
}

func (r *WebhookLogRepository) Insert(ctx context.Context, l *entity.WebhookLog) error {
	var details []byte
	if l.Details != nil {
		var err error
		details, err = json.Marshal(l.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO webhook_logs (id, deal_id, action, triggered_by, status, details, triggered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		l.ID,
		l.DealID,
		l.Action,
		l.TriggeredBy,
		l.Status,
		details,
		l.TriggeredAt,
	)

	return err
}

// ListRecent returns the newest entries joined with their deal, when it still exists.
func (r *WebhookLogRepository) ListRecent(ctx context.Context, limit int) ([]*entity.WebhookLog, error) {
	query := `
		SELECT l.id, l.deal_id, l.action, l.triggered_by, l.status, l.details, l.triggered_at,
		       d.id, d.business_name, d.contact_name, d.contact_email, d.industry,
		       d.funding_amount_requested, d.description, d.website_url, d.stage, d.source, d.created_at
		FROM webhook_logs l
		LEFT JOIN business_ideas d ON d.id = l.deal_id
		ORDER BY l.triggered_at DESC
		LIMIT $1
	`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*entity.WebhookLog{}
	for rows.Next() {
		var (
			l       entity.WebhookLog
			details []byte

			dealID        sql.NullString
			businessName  sql.NullString
			contactName   sql.NullString
			contactEmail  sql.NullString
			industry      sql.NullString
			fundingAmount sql.NullFloat64
			description   sql.NullString
			websiteURL    sql.NullString
			stage         sql.NullString
			source        sql.NullString
			createdAt     sql.NullTime
		)

		err := rows.Scan(
			&l.ID, &l.DealID, &l.Action, &l.TriggeredBy, &l.Status, &details, &l.TriggeredAt,
			&dealID, &businessName, &contactName, &contactEmail, &industry,
			&fundingAmount, &description, &websiteURL, &stage, &source, &createdAt,
		)
		if err != nil {
			return nil, err
		}

		if details != nil {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, err
			}
		}

		if dealID.Valid {
			l.Deal = &entity.Deal{
				ID:                     dealID.String,
				BusinessName:           businessName.String,
				ContactName:            contactName.String,
				ContactEmail:           contactEmail.String,
				Industry:               industry.String,
				FundingAmountRequested: fundingAmount.Float64,
				Description:            description.String,
				WebsiteURL:             websiteURL.String,
				Stage:                  stage.String,
				Source:                 source.String,
				CreatedAt:              createdAt.Time,
			}
		}

		logs = append(logs, &l)
	}

	return logs, rows.Err()
}
