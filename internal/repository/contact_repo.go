package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"deskhive/internal/db"
)

// ContactRepository is the read side of the CRM contacts table; the booking
// flow only ever verifies and displays contacts.
type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(database *sql.DB) *ContactRepository {
	return &ContactRepository{DB: database}
}

func (r *ContactRepository) GetByID(ctx context.Context, id, orgID int64) (*db.Contact, error) {
	query := `SELECT id, org_id, name, email, phone, created_at FROM contacts WHERE id = $1 AND org_id = $2`
	var c db.Contact
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&c.ID, &c.OrgID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying contact %d: %w", id, err)
	}
	return &c, nil
}
