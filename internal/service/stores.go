package service

import (
	"context"
	"time"

	"deskhive/internal/db"
	"deskhive/internal/repository"
)

// Store interfaces capture the persistence interactions the services need.
// The repository types satisfy them; tests substitute stubs.

type SpaceStore interface {
	GetByID(ctx context.Context, id, orgID int64) (*db.Space, error)
}

type LocationStore interface {
	GetByID(ctx context.Context, id, orgID int64) (*db.Location, error)
}

type ContactStore interface {
	GetByID(ctx context.Context, id, orgID int64) (*db.Contact, error)
}

type BookingStore interface {
	CountOverlapping(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) (int, error)
	ListOverlapping(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) ([]db.Booking, error)
	BookedUnitIDs(ctx context.Context, spaceID, orgID int64, start, end time.Time, excludeID *int64) ([]int64, error)
	Create(ctx context.Context, b *db.Booking) error
	GetByReference(ctx context.Context, reference string, orgID int64) (*db.Booking, error)
	UpdateSchedule(ctx context.Context, id int64, start, end time.Time, unitID *int64, attendees int) error
	UpdateStatus(ctx context.Context, id int64, status, reason string) error
	ListForRange(ctx context.Context, spaceID, orgID int64, start, end time.Time) ([]db.Booking, error)
	List(ctx context.Context, orgID int64, f repository.ListFilter) ([]db.Booking, int64, error)
}

type JobStore interface {
	ConfirmedPastEndIDs(ctx context.Context) ([]int64, error)
	UpdateStatuses(ctx context.Context, ids []int64, status string) error
	DueForReminder(ctx context.Context, within time.Duration) ([]repository.ReminderBooking, error)
	MarkRemindersSent(ctx context.Context, ids []int64) error
}

type UnitStore interface {
	ListActive(ctx context.Context, spaceID, orgID int64) ([]db.ResourceUnit, error)
	ListBySpace(ctx context.Context, spaceID, orgID int64) ([]db.ResourceUnit, error)
	CountBySpace(ctx context.Context, spaceID, orgID int64) (int, error)
	CreateBulk(ctx context.Context, units []db.ResourceUnit) error
	UpdateStatus(ctx context.Context, id, orgID int64, status string) error
}
