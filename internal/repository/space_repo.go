package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"deskhive/internal/db"
)

type SpaceRepository struct {
	DB *sql.DB
}

func NewSpaceRepository(database *sql.DB) *SpaceRepository {
	return &SpaceRepository{DB: database}
}

const spaceColumns = `id, org_id, location_id, name, capacity, has_pooled_units,
	min_booking_duration, max_booking_duration, advance_booking_days,
	allow_same_day_booking, created_at, updated_at`

// GetByID resolves a space scoped to the calling organization.
func (r *SpaceRepository) GetByID(ctx context.Context, id, orgID int64) (*db.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1 AND org_id = $2`
	s, err := scanSpace(r.DB.QueryRowContext(ctx, query, id, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying space %d: %w", id, err)
	}
	return s, nil
}

// ListByLocation returns all spaces under a location.
func (r *SpaceRepository) ListByLocation(ctx context.Context, locationID, orgID int64) ([]db.Space, error) {
	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE location_id = $1 AND org_id = $2 ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query, locationID, orgID)
	if err != nil {
		return nil, fmt.Errorf("error querying spaces for location %d: %w", locationID, err)
	}
	defer rows.Close()

	var spaces []db.Space
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning space: %w", err)
		}
		spaces = append(spaces, *s)
	}
	return spaces, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSpace(row rowScanner) (*db.Space, error) {
	var s db.Space
	var capacity sql.NullInt64
	err := row.Scan(
		&s.ID, &s.OrgID, &s.LocationID, &s.Name, &capacity, &s.HasPooledUnits,
		&s.MinBookingDuration, &s.MaxBookingDuration, &s.AdvanceBookingDays,
		&s.AllowSameDayBooking, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		s.Capacity = &c
	}
	return &s, nil
}
