package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"deskhive/internal/db"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// ConfirmedPastEndIDs finds confirmed bookings whose end time has passed;
// the sweep job moves them to completed.
func (r *JobRepository) ConfirmedPastEndIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM bookings WHERE status = $1 AND end_time < NOW()`
	rows, err := r.DB.QueryContext(ctx, query, db.StatusConfirmed)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed bookings past end time: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateStatuses moves a batch of bookings to a new status.
func (r *JobRepository) UpdateStatuses(ctx context.Context, ids []int64, status string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	if _, err := r.DB.ExecContext(ctx, query, status, pq.Array(ids)); err != nil {
		return fmt.Errorf("error updating booking statuses: %w", err)
	}
	return nil
}

// ReminderBooking joins a booking with the contact details needed to reach
// the person it was made for.
type ReminderBooking struct {
	Booking      db.Booking
	ContactName  string
	ContactEmail string
	ContactPhone string
	Timezone     string
}

// DueForReminder returns active bookings starting within the window that have
// not been reminded yet and have a contact to notify.
func (r *JobRepository) DueForReminder(ctx context.Context, within time.Duration) ([]ReminderBooking, error) {
	query := `
		SELECT b.id, b.org_id, b.space_id, b.reference, b.start_time, b.end_time, b.status,
		       c.name, c.email, c.phone, l.timezone
		FROM bookings b
		JOIN contacts c ON c.id = b.contact_id
		JOIN spaces s ON s.id = b.space_id
		JOIN locations l ON l.id = s.location_id
		WHERE b.status = ANY($1)
		  AND b.reminder_sent = FALSE
		  AND b.start_time > NOW()
		  AND b.start_time <= NOW() + $2::interval`
	interval := fmt.Sprintf("%d seconds", int(within.Seconds()))
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(db.ActiveStatuses()), interval)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings due for reminder: %w", err)
	}
	defer rows.Close()

	var due []ReminderBooking
	for rows.Next() {
		var rb ReminderBooking
		if err := rows.Scan(
			&rb.Booking.ID, &rb.Booking.OrgID, &rb.Booking.SpaceID, &rb.Booking.Reference,
			&rb.Booking.StartTime, &rb.Booking.EndTime, &rb.Booking.Status,
			&rb.ContactName, &rb.ContactEmail, &rb.ContactPhone, &rb.Timezone,
		); err != nil {
			return nil, fmt.Errorf("error scanning reminder booking: %w", err)
		}
		due = append(due, rb)
	}
	return due, rows.Err()
}

// MarkRemindersSent flags bookings so the reminder fires once.
func (r *JobRepository) MarkRemindersSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE bookings SET reminder_sent = TRUE, updated_at = NOW() WHERE id = ANY($1)`
	if _, err := r.DB.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("error marking reminders sent: %w", err)
	}
	return nil
}
