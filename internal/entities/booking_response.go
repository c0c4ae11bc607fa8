package entities

import (
	"time"

	"deskhive/internal/db"
	"deskhive/internal/utils"
)

// BookingResponse mirrors a persisted booking. Start and end are surfaced
// under both canonical and legacy names so older clients keep working.
type BookingResponse struct {
	ID                 int64     `json:"id"`
	Reference          string    `json:"reference"`
	SpaceID            int64     `json:"space_id"`
	ResourceUnitID     *int64    `json:"resource_unit_id,omitempty"`
	ContactID          *int64    `json:"contact_id,omitempty"`
	StartTime          time.Time `json:"start_time"`
	EndTime            time.Time `json:"end_time"`
	LegacyStart        time.Time `json:"start"`
	LegacyEnd          time.Time `json:"end"`
	Status             string    `json:"status"`
	AttendeeCount      int       `json:"attendee_count"`
	TotalAmount        int       `json:"total_amount"`
	PaymentStatus      string    `json:"payment_status"`
	CheckedIn          bool      `json:"checked_in"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewBookingResponse maps a db booking into its API shape.
func NewBookingResponse(b *db.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		SpaceID:            b.SpaceID,
		ResourceUnitID:     b.ResourceUnitID,
		ContactID:          b.ContactID,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		LegacyStart:        b.StartTime,
		LegacyEnd:          b.EndTime,
		Status:             b.Status,
		AttendeeCount:      b.AttendeeCount,
		TotalAmount:        b.TotalAmount,
		PaymentStatus:      b.PaymentStatus,
		CheckedIn:          b.CheckedIn,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// ConflictInfo identifies a booking blocking a requested time range.
type ConflictInfo struct {
	Reference string    `json:"reference"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

// Rejection codes; handlers map them to HTTP statuses.
const (
	RejectNotFound     = "NOT_FOUND"
	RejectValidation   = "VALIDATION_FAILED"
	RejectOverCapacity = "OVER_CAPACITY"
	RejectPolicy       = "POLICY_VIOLATION"
)

// BookingRejection is returned when a create or update fails a business rule.
// The detail groups relevant to the rule hit are populated.
type BookingRejection struct {
	Code      string         `json:"code"`
	Errors    []string       `json:"errors,omitempty"`
	Warnings  []string       `json:"warnings,omitempty"`
	Conflicts []ConflictInfo `json:"conflicts,omitempty"`
	// Rule context echoed back so callers can self-diagnose.
	MinimumAdvanceMinutes int                     `json:"minimum_advance_minutes,omitempty"`
	MaximumAdvanceDays    int                     `json:"maximum_advance_days,omitempty"`
	TimeUntilBooking      *utils.TimeUntilBooking `json:"time_until_booking,omitempty"`
	Reason                string                  `json:"reason,omitempty"`
	HoursRemaining        *float64                `json:"hours_remaining,omitempty"`
}

// BookingsList is a paged list response.
type BookingsList struct {
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
	Bookings []*BookingResponse `json:"bookings"`
}
