package db

import "time"

// Booking statuses. Only StatusPending and StatusConfirmed count toward
// capacity and conflict checks.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// Resource unit statuses.
const (
	UnitActive   = "active"
	UnitDisabled = "disabled"
)

// Payment statuses (informational only; no payment processing happens here).
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// bookingTransitions is the allowed status state machine. Cancellation and
// completion are soft transitions, never row deletes.
var bookingTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// CanTransition reports whether a booking may move from one status to another.
// Terminal states (cancelled, completed, no_show) allow no further moves.
func CanTransition(from, to string) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ActiveStatuses returns the statuses that occupy capacity.
func ActiveStatuses() []string {
	return []string{StatusPending, StatusConfirmed}
}

type Organization struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type User struct {
	ID           int64
	OrgID        int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Location struct {
	ID       int64
	OrgID    int64
	Name     string
	Timezone string
	// AllowSameDayBooking is the location-level default; spaces may override.
	AllowSameDayBooking bool
	Hours               []LocationHours
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LocationHours is one weekday row of a location's operating-hours table.
// Every location carries exactly seven rows, one per weekday.
type LocationHours struct {
	ID         int64
	LocationID int64
	// Weekday matches time.Weekday.String(): "Sunday".."Saturday".
	Weekday string
	// OpenTime and CloseTime are "HH:MM" in the location's timezone.
	// CloseTime <= OpenTime means the window spans midnight.
	OpenTime  string
	CloseTime string
	Closed    bool
}

// HoursFor returns the operating-hours row for the given weekday name, or nil
// if the location has no row for it.
func (l *Location) HoursFor(weekday string) *LocationHours {
	for i := range l.Hours {
		if l.Hours[i].Weekday == weekday {
			return &l.Hours[i]
		}
	}
	return nil
}

type Space struct {
	ID         int64
	OrgID      int64
	LocationID int64
	Name       string
	// Capacity is nil for unlimited spaces.
	Capacity       *int
	HasPooledUnits bool
	// Booking duration bounds, in minutes. Zero means unbounded on that side.
	MinBookingDuration int
	MaxBookingDuration int
	// AdvanceBookingDays overrides the default maximum advance window when > 0.
	AdvanceBookingDays  int
	AllowSameDayBooking bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ResourceUnit is one concrete bookable unit inside a pooled space.
type ResourceUnit struct {
	ID        int64
	OrgID     int64
	SpaceID   int64
	Label     string
	Status    string
	CreatedAt time.Time
}

type Booking struct {
	ID             int64
	OrgID          int64
	SpaceID        int64
	ResourceUnitID *int64
	ContactID      *int64
	Reference      string
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	AttendeeCount  int
	// TotalAmount is in cents; charging it is out of scope for this service.
	TotalAmount        int
	PaymentStatus      string
	CheckedIn          bool
	CancellationReason string
	ReminderSent       bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Contact struct {
	ID        int64
	OrgID     int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
