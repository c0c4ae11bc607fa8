package entities

import "time"

// CreateBookingRequest is the payload for creating a booking. Both canonical
// (start_time/end_time) and legacy (start/end) field names are accepted; the
// normalized values are exposed via Start()/End().
type CreateBookingRequest struct {
	SpaceID       int64      `json:"space_id"`
	ContactID     *int64     `json:"contact_id,omitempty"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	LegacyStart   *time.Time `json:"start,omitempty"`
	LegacyEnd     *time.Time `json:"end,omitempty"`
	AttendeeCount int        `json:"attendee_count"`
	TotalAmount   int        `json:"total_amount"`
	Notes         string     `json:"notes,omitempty"`
}

func (r *CreateBookingRequest) Start() time.Time {
	if r.StartTime != nil {
		return *r.StartTime
	}
	if r.LegacyStart != nil {
		return *r.LegacyStart
	}
	return time.Time{}
}

func (r *CreateBookingRequest) End() time.Time {
	if r.EndTime != nil {
		return *r.EndTime
	}
	if r.LegacyEnd != nil {
		return *r.LegacyEnd
	}
	return time.Time{}
}

// UpdateBookingRequest reschedules an existing booking.
type UpdateBookingRequest struct {
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	LegacyStart   *time.Time `json:"start,omitempty"`
	LegacyEnd     *time.Time `json:"end,omitempty"`
	AttendeeCount *int       `json:"attendee_count,omitempty"`
}

func (r *UpdateBookingRequest) Start() *time.Time {
	if r.StartTime != nil {
		return r.StartTime
	}
	return r.LegacyStart
}

func (r *UpdateBookingRequest) End() *time.Time {
	if r.EndTime != nil {
		return r.EndTime
	}
	return r.LegacyEnd
}

// CancelBookingRequest carries the recorded cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}
