package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `
		SELECT id, username, email, full_name, role, created_at
		FROM user_profiles
		WHERE id = $1
	`

	p, err := scanProfile(r.DB.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (r *ProfileRepository) Insert(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, username, email, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.Username,
		p.Email,
		nullString(p.FullName),
		p.Role,
		p.CreatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Concurrent first fetch already created the row.
			return nil
		}
		log.Printf("profile insert failed: %v", err)
		return err
	}

	return nil
}

func (r *ProfileRepository) ListAll(ctx context.Context) ([]*entity.UserProfile, error) {
	query := `
		SELECT id, username, email, full_name, role, created_at
		FROM user_profiles
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*entity.UserProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func scanProfile(row rowScanner) (*entity.UserProfile, error) {
	var (
		p        entity.UserProfile
		fullName sql.NullString
	)

	err := row.Scan(&p.ID, &p.Username, &p.Email, &fullName, &p.Role, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	p.FullName = fullName.String
	return &p, nil
}
