package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"deskhive/internal/db"
)

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

const bookingColumns = `id, org_id, space_id, resource_unit_id, contact_id, reference,
	start_time, end_time, status, attendee_count, total_amount, payment_status,
	checked_in, cancellation_reason, reminder_sent, created_at, updated_at`

// CountOverlapping counts active bookings on a space whose [start,end) range
// intersects the given one. excludeID omits a booking from the count when
// re-checking during an update.
func (r *BookingRepository) CountOverlapping(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM bookings
		WHERE space_id = $1 AND org_id = $2
		  AND status = ANY($3)
		  AND start_time < $4 AND end_time > $5
		  AND ($6::bigint IS NULL OR id <> $6)`
	var count int
	err := r.DB.QueryRowContext(ctx, query, spaceID, orgID,
		pq.Array(db.ActiveStatuses()), end, start, excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting overlapping bookings: %w", err)
	}
	return count, nil
}

// ListOverlapping returns the active bookings conflicting with [start,end) on
// a space, for conflict reporting.
func (r *BookingRepository) ListOverlapping(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) ([]db.Booking, error) {
	query := `
		SELECT ` + bookingColumns + ` FROM bookings
		WHERE space_id = $1 AND org_id = $2
		  AND status = ANY($3)
		  AND start_time < $4 AND end_time > $5
		  AND ($6::bigint IS NULL OR id <> $6)
		ORDER BY start_time`
	rows, err := r.DB.QueryContext(ctx, query, spaceID, orgID,
		pq.Array(db.ActiveStatuses()), end, start, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error querying overlapping bookings: %w", err)
	}
	defer rows.Close()
	return scanBookings(rows)
}

// BookedUnitIDs returns the distinct resource-unit ids held by active
// bookings overlapping [start,end) on a space.
func (r *BookingRepository) BookedUnitIDs(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) ([]int64, error) {
	query := `
		SELECT DISTINCT resource_unit_id FROM bookings
		WHERE space_id = $1 AND org_id = $2
		  AND resource_unit_id IS NOT NULL
		  AND status = ANY($3)
		  AND start_time < $4 AND end_time > $5
		  AND ($6::bigint IS NULL OR id <> $6)`
	rows, err := r.DB.QueryContext(ctx, query, spaceID, orgID,
		pq.Array(db.ActiveStatuses()), end, start, excludeID)
	if err != nil {
		return nil, fmt.Errorf("error querying booked unit ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning unit id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create persists a booking and fills in its generated id and timestamps.
func (r *BookingRepository) Create(ctx context.Context, b *db.Booking) error {
	query := `
		INSERT INTO bookings
		(org_id, space_id, resource_unit_id, contact_id, reference, start_time, end_time,
		 status, attendee_count, total_amount, payment_status, checked_in,
		 cancellation_reason, reminder_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRowContext(ctx, query,
		b.OrgID, b.SpaceID, b.ResourceUnitID, b.ContactID, b.Reference,
		b.StartTime, b.EndTime, b.Status, b.AttendeeCount, b.TotalAmount,
		b.PaymentStatus, b.CheckedIn, b.CancellationReason, b.ReminderSent,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetByReference resolves a booking by its reference, org-scoped.
func (r *BookingRepository) GetByReference(ctx context.Context, reference string, orgID int64) (*db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1 AND org_id = $2`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, reference, orgID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying booking %q: %w", reference, err)
	}
	return b, nil
}

// UpdateSchedule moves a booking to a new time range and optionally a new
// resource unit and attendee count.
func (r *BookingRepository) UpdateSchedule(ctx context.Context, id int64, start, end time.Time, unitID *int64, attendees int) error {
	query := `
		UPDATE bookings
		SET start_time = $2, end_time = $3, resource_unit_id = $4, attendee_count = $5, updated_at = NOW()
		WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, start, end, unitID, attendees)
	if err != nil {
		return fmt.Errorf("error updating booking schedule: %w", err)
	}
	return nil
}

// UpdateStatus transitions a booking's status, recording a cancellation
// reason when one is given. Cancellation is a soft delete.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status, reason string) error {
	query := `
		UPDATE bookings
		SET status = $2,
		    cancellation_reason = CASE WHEN $3 <> '' THEN $3 ELSE cancellation_reason END,
		    updated_at = NOW()
		WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, status, reason)
	if err != nil {
		return fmt.Errorf("error updating booking status: %w", err)
	}
	return nil
}

// ListForRange returns active bookings on a space intersecting [start,end),
// used by slot generation for a day.
func (r *BookingRepository) ListForRange(ctx context.Context, spaceID, orgID int64, start, end time.Time) ([]db.Booking, error) {
	return r.ListOverlapping(ctx, spaceID, orgID, start, end, nil)
}

// ListFilter narrows List queries.
type ListFilter struct {
	SpaceID *int64
	Status  string
	// Day restricts to bookings starting on this calendar day (UTC).
	Day    *time.Time
	Limit  int
	Offset int
}

// List pages through an organization's bookings, newest start first.
func (r *BookingRepository) List(ctx context.Context, orgID int64, f ListFilter) ([]db.Booking, int64, error) {
	where := `WHERE org_id = $1
		AND ($2::bigint IS NULL OR space_id = $2)
		AND ($3 = '' OR status = $3)
		AND ($4::timestamptz IS NULL OR (start_time >= $4 AND start_time < $4 + interval '1 day'))`

	var total int64
	countQuery := `SELECT COUNT(*) FROM bookings ` + where
	if err := r.DB.QueryRowContext(ctx, countQuery, orgID, f.SpaceID, f.Status, f.Day).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting bookings: %w", err)
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := `SELECT ` + bookingColumns + ` FROM bookings ` + where + `
		ORDER BY start_time DESC LIMIT $5 OFFSET $6`
	rows, err := r.DB.QueryContext(ctx, query, orgID, f.SpaceID, f.Status, f.Day, limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func scanBookings(rows *sql.Rows) ([]db.Booking, error) {
	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner) (*db.Booking, error) {
	var b db.Booking
	var unitID, contactID sql.NullInt64
	var reason sql.NullString
	err := row.Scan(
		&b.ID, &b.OrgID, &b.SpaceID, &unitID, &contactID, &b.Reference,
		&b.StartTime, &b.EndTime, &b.Status, &b.AttendeeCount, &b.TotalAmount,
		&b.PaymentStatus, &b.CheckedIn, &reason, &b.ReminderSent, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if unitID.Valid {
		v := unitID.Int64
		b.ResourceUnitID = &v
	}
	if contactID.Valid {
		v := contactID.Int64
		b.ContactID = &v
	}
	b.CancellationReason = reason.String
	return &b, nil
}
