package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"deskhive/internal/db"
)

type LocationRepository struct {
	DB *sql.DB
}

func NewLocationRepository(database *sql.DB) *LocationRepository {
	return &LocationRepository{DB: database}
}

// GetByID loads a location together with its seven operating-hours rows.
func (r *LocationRepository) GetByID(ctx context.Context, id, orgID int64) (*db.Location, error) {
	query := `
		SELECT id, org_id, name, timezone, allow_same_day_booking, created_at, updated_at
		FROM locations WHERE id = $1 AND org_id = $2`
	var l db.Location
	err := r.DB.QueryRowContext(ctx, query, id, orgID).Scan(
		&l.ID, &l.OrgID, &l.Name, &l.Timezone, &l.AllowSameDayBooking, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying location %d: %w", id, err)
	}

	hoursQuery := `
		SELECT id, location_id, weekday, open_time, close_time, closed
		FROM location_hours WHERE location_id = $1
		ORDER BY CASE weekday
			WHEN 'Sunday' THEN 0 WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2
			WHEN 'Wednesday' THEN 3 WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5
			ELSE 6 END`
	rows, err := r.DB.QueryContext(ctx, hoursQuery, id)
	if err != nil {
		return nil, fmt.Errorf("error querying hours for location %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var h db.LocationHours
		if err := rows.Scan(&h.ID, &h.LocationID, &h.Weekday, &h.OpenTime, &h.CloseTime, &h.Closed); err != nil {
			return nil, fmt.Errorf("error scanning location hours: %w", err)
		}
		l.Hours = append(l.Hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &l, nil
}
