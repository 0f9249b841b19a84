package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type DealRepository struct {
	DB *sql.DB
}

func NewDealRepository(db *sql.DB) *DealRepository {
	return &DealRepository{DB: db}
}

const dealColumns = `id, business_name, contact_name, contact_email, industry,
	funding_amount_requested, description, website_url, stage, source, created_at`

func (r *DealRepository) List(ctx context.Context) ([]*entity.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM business_ideas ORDER BY created_at DESC`, dealColumns)

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deals := []*entity.Deal{}
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, d)
	}

	return deals, rows.Err()
}

func (r *DealRepository) FindByID(ctx context.Context, id string) (*entity.Deal, error) {
	query := fmt.Sprintf(`SELECT %s FROM business_ideas WHERE id = $1`, dealColumns)

	d, err := scanDeal(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (r *DealRepository) Create(ctx context.Context, d *entity.Deal) error {
	query := `
		INSERT INTO business_ideas
			(id, business_name, contact_name, contact_email, industry,
			 funding_amount_requested, description, website_url, stage, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.BusinessName,
		nullString(d.ContactName),
		d.ContactEmail,
		nullString(d.Industry),
		d.FundingAmountRequested,
		nullString(d.Description),
		nullString(d.WebsiteURL),
		d.Stage,
		d.Source,
		d.CreatedAt,
	)

	return err
}

// Update applies only the fields the patch carries and returns the updated row.
func (r *DealRepository) Update(ctx context.Context, id string, patch *entity.DealPatch) (*entity.Deal, error) {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.BusinessName != nil {
		add("business_name", *patch.BusinessName)
	}
	if patch.ContactName != nil {
		add("contact_name", *patch.ContactName)
	}
	if patch.ContactEmail != nil {
		add("contact_email", *patch.ContactEmail)
	}
	if patch.Industry != nil {
		add("industry", *patch.Industry)
	}
	if patch.FundingAmountRequested != nil {
		add("funding_amount_requested", *patch.FundingAmountRequested)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.WebsiteURL != nil {
		add("website_url", *patch.WebsiteURL)
	}
	if patch.Stage != nil {
		add("stage", *patch.Stage)
	}
	if patch.Source != nil {
		add("source", *patch.Source)
	}

	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE business_ideas SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), dealColumns,
	)

	d, err := scanDeal(r.DB.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, entity.ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Delete is idempotent: removing zero rows is not an error.
func (r *DealRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM business_ideas WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDeal(row rowScanner) (*entity.Deal, error) {
	var (
		d             entity.Deal
		contactName   sql.NullString
		industry      sql.NullString
		fundingAmount sql.NullFloat64
		description   sql.NullString
		websiteURL    sql.NullString
	)

	err := row.Scan(
		&d.ID,
		&d.BusinessName,
		&contactName,
		&d.ContactEmail,
		&industry,
		&fundingAmount,
		&description,
		&websiteURL,
		&d.Stage,
		&d.Source,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.ContactName = contactName.String
	d.Industry = industry.String
	d.FundingAmountRequested = fundingAmount.Float64
	d.Description = description.String
	d.WebsiteURL = websiteURL.String

	return &d, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
