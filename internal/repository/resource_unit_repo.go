package repository

import (
	"context"
	"database/sql"
	"fmt"

	"deskhive/internal/db"
)

type ResourceUnitRepository struct {
	DB *sql.DB
}

func NewResourceUnitRepository(database *sql.DB) *ResourceUnitRepository {
	return &ResourceUnitRepository{DB: database}
}

// ListActive returns the active units of a space. Disabled units are excluded
// from availability but never deleted.
func (r *ResourceUnitRepository) ListActive(ctx context.Context, spaceID, orgID int64) ([]db.ResourceUnit, error) {
	query := `
		SELECT id, org_id, space_id, label, status, created_at
		FROM resource_units
		WHERE space_id = $1 AND org_id = $2 AND status = $3
		ORDER BY id`
	return r.list(ctx, query, spaceID, orgID, db.UnitActive)
}

// ListBySpace returns every unit of a space regardless of status.
func (r *ResourceUnitRepository) ListBySpace(ctx context.Context, spaceID, orgID int64) ([]db.ResourceUnit, error) {
	query := `
		SELECT id, org_id, space_id, label, status, created_at
		FROM resource_units
		WHERE space_id = $1 AND org_id = $2
		ORDER BY id`
	return r.list(ctx, query, spaceID, orgID)
}

// CountBySpace counts every unit of a space, disabled ones included, so that
// idempotent generation never re-creates labels.
func (r *ResourceUnitRepository) CountBySpace(ctx context.Context, spaceID, orgID int64) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM resource_units WHERE space_id = $1 AND org_id = $2`,
		spaceID, orgID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting resource units: %w", err)
	}
	return count, nil
}

// CreateBulk inserts units in one statement. An empty slice is a no-op.
func (r *ResourceUnitRepository) CreateBulk(ctx context.Context, units []db.ResourceUnit) error {
	if len(units) == 0 {
		return nil
	}
	query := `INSERT INTO resource_units (org_id, space_id, label, status, created_at) VALUES `
	args := make([]any, 0, len(units)*4)
	for i, u := range units {
		if i > 0 {
			query += ","
		}
		n := i * 4
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, NOW())", n+1, n+2, n+3, n+4)
		args = append(args, u.OrgID, u.SpaceID, u.Label, u.Status)
	}
	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error creating resource units: %w", err)
	}
	return nil
}

// UpdateStatus enables or disables a unit.
func (r *ResourceUnitRepository) UpdateStatus(ctx context.Context, id, orgID int64, status string) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE resource_units SET status = $3 WHERE id = $1 AND org_id = $2`,
		id, orgID, status)
	if err != nil {
		return fmt.Errorf("error updating resource unit status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResourceUnitRepository) list(ctx context.Context, query string, args ...any) ([]db.ResourceUnit, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying resource units: %w", err)
	}
	defer rows.Close()

	var units []db.ResourceUnit
	for rows.Next() {
		var u db.ResourceUnit
		if err := rows.Scan(&u.ID, &u.OrgID, &u.SpaceID, &u.Label, &u.Status, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning resource unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}
