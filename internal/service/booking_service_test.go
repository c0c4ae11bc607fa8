package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"

	"deskhive/internal/db"
	"deskhive/internal/entities"
	"deskhive/internal/repository"
)

type locationStoreStub struct {
	locations map[int64]*db.Location
	err       error
}

func (s *locationStoreStub) GetByID(ctx context.Context, id, orgID int64) (*db.Location, error) {
	if s.err != nil {
		return nil, s.err
	}
	l, ok := s.locations[id]
	if !ok || l.OrgID != orgID {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

type contactStoreStub struct {
	contacts map[int64]*db.Contact
}

func (s *contactStoreStub) GetByID(ctx context.Context, id, orgID int64) (*db.Contact, error) {
	c, ok := s.contacts[id]
	if !ok || c.OrgID != orgID {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

// alwaysOpenLocation keeps the orchestrator tests independent of wall-clock
// time of day.
func alwaysOpenLocation() *db.Location {
	l := &db.Location{ID: 1, OrgID: 10, Name: "Downtown Hub", Timezone: "UTC", AllowSameDayBooking: true}
	for d := time.Sunday; d <= time.Saturday; d++ {
		l.Hours = append(l.Hours, db.LocationHours{
			Weekday: d.String(), OpenTime: "00:00", CloseTime: "23:59",
		})
	}
	return l
}

func bookableSpace() *db.Space {
	return &db.Space{
		ID: 1, OrgID: 10, LocationID: 1, Name: "Meeting Room A",
		Capacity: intPtr(4), AllowSameDayBooking: true,
	}
}

// futureAt returns noon UTC a few days out, safely inside every default
// booking window.
func futureAt(days int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

type orchestratorFixture struct {
	svc      *BookingService
	bookings *bookingStoreStub
	units    *unitStoreStub
}

func newOrchestrator(space *db.Space, bookings *bookingStoreStub, units *unitStoreStub) *orchestratorFixture {
	if bookings == nil {
		bookings = &bookingStoreStub{}
	}
	if units == nil {
		units = &unitStoreStub{}
	}
	spaces := &spaceStoreStub{spaces: map[int64]*db.Space{}}
	if space != nil {
		spaces.spaces[space.ID] = space
	}
	locations := &locationStoreStub{locations: map[int64]*db.Location{1: alwaysOpenLocation()}}
	contacts := &contactStoreStub{contacts: map[int64]*db.Contact{
		7: {ID: 7, OrgID: 10, Name: "Ada", Email: "ada@example.com", Phone: "+15550100"},
	}}
	availability := NewAvailabilityService(spaces, bookings, units)
	svc := NewBookingService(spaces, locations, contacts, bookings, availability, nil, nil)
	return &orchestratorFixture{svc: svc, bookings: bookings, units: units}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCreateBookingSuccess(t *testing.T) {
	f := newOrchestrator(bookableSpace(), nil, nil)
	start := futureAt(3)
	contactID := int64(7)

	req := &entities.CreateBookingRequest{
		SpaceID:       1,
		ContactID:     &contactID,
		StartTime:     timePtr(start),
		EndTime:       timePtr(start.Add(2 * time.Hour)),
		AttendeeCount: 3,
		TotalAmount:   5000,
	}
	booking, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection != nil {
		t.Fatalf("unexpected rejection: %+v", rejection)
	}

	if booking.Status != db.StatusPending {
		t.Errorf("status = %q, want pending", booking.Status)
	}
	if booking.PaymentStatus != db.PaymentPending {
		t.Errorf("payment status = %q, want pending", booking.PaymentStatus)
	}
	if booking.CheckedIn {
		t.Error("new bookings start not checked in")
	}
	if !strings.HasPrefix(booking.Reference, "BK-") || len(booking.Reference) != 11 {
		t.Errorf("reference %q does not match prefix + 8 char suffix", booking.Reference)
	}
	// Legacy and canonical field variants carry the same instants.
	if !booking.LegacyStart.Equal(booking.StartTime) || !booking.LegacyEnd.Equal(booking.EndTime) {
		t.Error("legacy start/end must mirror start_time/end_time")
	}
	if f.bookings.created == nil {
		t.Fatal("booking was not persisted")
	}
}

func TestCreateBookingLegacyFieldNames(t *testing.T) {
	f := newOrchestrator(bookableSpace(), nil, nil)
	start := futureAt(3)

	req := &entities.CreateBookingRequest{
		SpaceID:       1,
		LegacyStart:   timePtr(start),
		LegacyEnd:     timePtr(start.Add(time.Hour)),
		AttendeeCount: 1,
	}
	booking, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil || rejection != nil {
		t.Fatalf("err=%v rejection=%+v", err, rejection)
	}
	if !booking.StartTime.Equal(start) {
		t.Errorf("legacy start was not normalized, got %v", booking.StartTime)
	}
}

func TestCreateBookingSpaceNotFound(t *testing.T) {
	f := newOrchestrator(nil, nil, nil)
	start := futureAt(3)

	req := &entities.CreateBookingRequest{
		SpaceID:   99,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectNotFound {
		t.Errorf("rejection = %+v, want NOT_FOUND", rejection)
	}
}

func TestCreateBookingStoreFailure(t *testing.T) {
	// Infrastructure failures propagate as errors, never as rejections.
	boom := errors.New("connection refused")
	start := futureAt(3)
	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}

	t.Run("space store", func(t *testing.T) {
		spaces := &spaceStoreStub{err: boom}
		bookings := &bookingStoreStub{}
		units := &unitStoreStub{}
		locations := &locationStoreStub{locations: map[int64]*db.Location{1: alwaysOpenLocation()}}
		contacts := &contactStoreStub{}
		svc := NewBookingService(spaces, locations, contacts, bookings, NewAvailabilityService(spaces, bookings, units), nil, nil)

		_, rejection, err := svc.CreateBooking(context.Background(), 10, req)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want the store failure", err)
		}
		if rejection != nil {
			t.Errorf("rejection = %+v, want none for an infrastructure failure", rejection)
		}
	})

	t.Run("location store", func(t *testing.T) {
		space := bookableSpace()
		spaces := &spaceStoreStub{spaces: map[int64]*db.Space{1: space}}
		bookings := &bookingStoreStub{}
		units := &unitStoreStub{}
		locations := &locationStoreStub{err: boom}
		contacts := &contactStoreStub{}
		svc := NewBookingService(spaces, locations, contacts, bookings, NewAvailabilityService(spaces, bookings, units), nil, nil)

		_, rejection, err := svc.CreateBooking(context.Background(), 10, req)
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want the store failure", err)
		}
		if rejection != nil {
			t.Errorf("rejection = %+v, want none for an infrastructure failure", rejection)
		}
	})
}

func TestCreateBookingUnknownContact(t *testing.T) {
	f := newOrchestrator(bookableSpace(), nil, nil)
	start := futureAt(3)
	missing := int64(404)

	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		ContactID: &missing,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectNotFound || rejection.Reason != "contact not found" {
		t.Errorf("rejection = %+v, want contact NOT_FOUND", rejection)
	}
}

func TestCreateBookingAdvanceNotice(t *testing.T) {
	f := newOrchestrator(bookableSpace(), nil, nil)
	start := time.Now().Add(10 * time.Minute)

	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectValidation {
		t.Fatalf("rejection = %+v, want VALIDATION_FAILED", rejection)
	}
	if !containsMatch(rejection.Errors, "advance notice") {
		t.Errorf("missing advance-notice error, got %v", rejection.Errors)
	}
	// The business-rule context is echoed back for self-diagnosis.
	if rejection.MinimumAdvanceMinutes != 30 || rejection.MaximumAdvanceDays != 90 {
		t.Errorf("echoed rule context = %d/%d, want 30/90", rejection.MinimumAdvanceMinutes, rejection.MaximumAdvanceDays)
	}
}

func TestCreateBookingDurationAndAttendeeRulesAggregate(t *testing.T) {
	space := bookableSpace()
	space.MinBookingDuration = 60
	space.MaxBookingDuration = 240
	f := newOrchestrator(space, nil, nil)
	start := futureAt(3)

	req := &entities.CreateBookingRequest{
		SpaceID:       1,
		StartTime:     timePtr(start),
		EndTime:       timePtr(start.Add(30 * time.Minute)),
		AttendeeCount: 10,
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectValidation {
		t.Fatalf("rejection = %+v, want VALIDATION_FAILED", rejection)
	}
	if !containsMatch(rejection.Errors, "at least 60 minutes") {
		t.Errorf("missing duration error, got %v", rejection.Errors)
	}
	if !containsMatch(rejection.Errors, "exceeds space capacity") {
		t.Errorf("missing attendee error, got %v", rejection.Errors)
	}
}

func TestCreateBookingConflict(t *testing.T) {
	space := bookableSpace()
	space.Capacity = intPtr(1)
	start := futureAt(3)
	bookings := &bookingStoreStub{
		overlapCount: 1,
		overlapping: []db.Booking{{
			Reference: "BK-EXISTING", StartTime: start, EndTime: start.Add(time.Hour), Status: db.StatusConfirmed,
		}},
	}
	f := newOrchestrator(space, bookings, nil)

	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectOverCapacity {
		t.Fatalf("rejection = %+v, want OVER_CAPACITY", rejection)
	}
	if len(rejection.Conflicts) != 1 || rejection.Conflicts[0].Reference != "BK-EXISTING" {
		t.Errorf("conflicts = %+v, want the existing booking's identity", rejection.Conflicts)
	}
}

func TestCreateBookingRacingInsertReportsConflict(t *testing.T) {
	// A concurrent booking that wins the capacity-check race surfaces as a
	// constraint violation on insert, not as a server error.
	bookings := &bookingStoreStub{createErr: &pq.Error{Code: "23505"}}
	f := newOrchestrator(bookableSpace(), bookings, nil)
	start := futureAt(3)

	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	_, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil {
		t.Fatalf("constraint violation must not be an error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectOverCapacity {
		t.Errorf("rejection = %+v, want OVER_CAPACITY", rejection)
	}
}

func TestCreateBookingAssignsPooledUnit(t *testing.T) {
	space := bookableSpace()
	space.HasPooledUnits = true
	units := &unitStoreStub{active: []db.ResourceUnit{{ID: 42, SpaceID: 1, Status: db.UnitActive}}}
	f := newOrchestrator(space, nil, units)
	start := futureAt(3)

	req := &entities.CreateBookingRequest{
		SpaceID:   1,
		StartTime: timePtr(start),
		EndTime:   timePtr(start.Add(time.Hour)),
	}
	booking, rejection, err := f.svc.CreateBooking(context.Background(), 10, req)
	if err != nil || rejection != nil {
		t.Fatalf("err=%v rejection=%+v", err, rejection)
	}
	if booking.ResourceUnitID == nil || *booking.ResourceUnitID != 42 {
		t.Errorf("ResourceUnitID = %v, want 42", booking.ResourceUnitID)
	}
}

func TestRecheckSpacePoliciesSameDayOverride(t *testing.T) {
	// The location allows same-day bookings but this space does not; the
	// redundant space-level re-check must catch it.
	space := bookableSpace()
	space.AllowSameDayBooking = false
	f := newOrchestrator(space, nil, nil)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	rejection := f.svc.recheckSpacePolicies(space, alwaysOpenLocation(), now.Add(3*time.Hour))
	if rejection == nil || rejection.Code != entities.RejectValidation {
		t.Fatalf("rejection = %+v, want VALIDATION_FAILED", rejection)
	}
	if !containsMatch(rejection.Errors, "same-day") {
		t.Errorf("missing same-day error, got %v", rejection.Errors)
	}

	// Tomorrow passes.
	if r := f.svc.recheckSpacePolicies(space, alwaysOpenLocation(), now.Add(26*time.Hour)); r != nil {
		t.Errorf("next-day booking rejected: %+v", r)
	}
}

func TestRecheckSpacePoliciesAdvanceLimit(t *testing.T) {
	space := bookableSpace()
	space.AdvanceBookingDays = 7
	f := newOrchestrator(space, nil, nil)

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return now }

	rejection := f.svc.recheckSpacePolicies(space, alwaysOpenLocation(), now.AddDate(0, 0, 8))
	if rejection == nil || !containsMatch(rejection.Errors, "7 days in advance") {
		t.Errorf("rejection = %+v, want space advance-limit error", rejection)
	}
	if r := f.svc.recheckSpacePolicies(space, alwaysOpenLocation(), now.AddDate(0, 0, 6)); r != nil {
		t.Errorf("in-window booking rejected: %+v", r)
	}
}

func TestUpdateBookingInsideCutoff(t *testing.T) {
	start := time.Now().Add(1 * time.Hour)
	bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
		"BK-SOON": {ID: 5, OrgID: 10, SpaceID: 1, Reference: "BK-SOON", Status: db.StatusConfirmed,
			StartTime: start, EndTime: start.Add(time.Hour)},
	}}
	f := newOrchestrator(bookableSpace(), bookings, nil)

	newStart := futureAt(3)
	req := &entities.UpdateBookingRequest{StartTime: timePtr(newStart), EndTime: timePtr(newStart.Add(time.Hour))}
	_, rejection, err := f.svc.UpdateBooking(context.Background(), 10, "BK-SOON", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectPolicy {
		t.Fatalf("rejection = %+v, want POLICY_VIOLATION inside 4h cutoff", rejection)
	}
	if rejection.HoursRemaining == nil {
		t.Error("policy rejection must report hours remaining")
	}
}

func TestUpdateBookingReschedules(t *testing.T) {
	start := futureAt(5)
	bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
		"BK-OK": {ID: 5, OrgID: 10, SpaceID: 1, Reference: "BK-OK", Status: db.StatusConfirmed,
			StartTime: start, EndTime: start.Add(time.Hour), AttendeeCount: 2},
	}}
	f := newOrchestrator(bookableSpace(), bookings, nil)

	newStart := futureAt(6)
	req := &entities.UpdateBookingRequest{StartTime: timePtr(newStart), EndTime: timePtr(newStart.Add(2 * time.Hour))}
	booking, rejection, err := f.svc.UpdateBooking(context.Background(), 10, "BK-OK", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection != nil {
		t.Fatalf("unexpected rejection: %+v", rejection)
	}
	if !booking.StartTime.Equal(newStart) {
		t.Errorf("start = %v, want %v", booking.StartTime, newStart)
	}
	if f.bookings.scheduled == nil || f.bookings.scheduled.ID != 5 {
		t.Error("reschedule was not persisted")
	}
}

func TestUpdateBookingTerminalStatus(t *testing.T) {
	start := futureAt(5)
	bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
		"BK-DONE": {ID: 5, OrgID: 10, SpaceID: 1, Reference: "BK-DONE", Status: db.StatusCompleted,
			StartTime: start, EndTime: start.Add(time.Hour)},
	}}
	f := newOrchestrator(bookableSpace(), bookings, nil)

	req := &entities.UpdateBookingRequest{StartTime: timePtr(futureAt(6))}
	_, rejection, err := f.svc.UpdateBooking(context.Background(), 10, "BK-DONE", req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectPolicy {
		t.Errorf("rejection = %+v, want POLICY_VIOLATION for completed booking", rejection)
	}
}

func TestCancelBooking(t *testing.T) {
	t.Run("inside cutoff", func(t *testing.T) {
		start := time.Now().Add(30 * time.Minute)
		bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
			"BK-LATE": {ID: 9, OrgID: 10, SpaceID: 1, Reference: "BK-LATE", Status: db.StatusConfirmed,
				StartTime: start, EndTime: start.Add(time.Hour)},
		}}
		f := newOrchestrator(bookableSpace(), bookings, nil)

		_, rejection, err := f.svc.CancelBooking(context.Background(), 10, "BK-LATE", "changed plans")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rejection == nil || rejection.Code != entities.RejectPolicy {
			t.Fatalf("rejection = %+v, want POLICY_VIOLATION inside 2h cutoff", rejection)
		}
		if len(bookings.statusLog) != 0 {
			t.Error("no status change may be persisted on refusal")
		}
	})

	t.Run("soft deletes with reason", func(t *testing.T) {
		start := futureAt(4)
		bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
			"BK-GO": {ID: 9, OrgID: 10, SpaceID: 1, Reference: "BK-GO", Status: db.StatusConfirmed,
				StartTime: start, EndTime: start.Add(time.Hour)},
		}}
		f := newOrchestrator(bookableSpace(), bookings, nil)

		booking, rejection, err := f.svc.CancelBooking(context.Background(), 10, "BK-GO", "client no longer needs the room")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rejection != nil {
			t.Fatalf("unexpected rejection: %+v", rejection)
		}
		if booking.Status != db.StatusCancelled {
			t.Errorf("status = %q, want cancelled", booking.Status)
		}
		if len(bookings.statusLog) != 1 || bookings.statusLog[0].reason != "client no longer needs the room" {
			t.Errorf("statusLog = %+v, want one cancellation with the reason recorded", bookings.statusLog)
		}
	})

	t.Run("already cancelled", func(t *testing.T) {
		start := futureAt(4)
		bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
			"BK-X": {ID: 9, OrgID: 10, SpaceID: 1, Reference: "BK-X", Status: db.StatusCancelled,
				StartTime: start, EndTime: start.Add(time.Hour)},
		}}
		f := newOrchestrator(bookableSpace(), bookings, nil)

		_, rejection, err := f.svc.CancelBooking(context.Background(), 10, "BK-X", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rejection == nil || rejection.Code != entities.RejectPolicy {
			t.Errorf("rejection = %+v, want POLICY_VIOLATION", rejection)
		}
	})
}

func TestTransitionBooking(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to confirmed", db.StatusPending, db.StatusConfirmed, true},
		{"confirmed to completed", db.StatusConfirmed, db.StatusCompleted, true},
		{"confirmed to no-show", db.StatusConfirmed, db.StatusNoShow, true},
		{"pending to completed", db.StatusPending, db.StatusCompleted, false},
		{"pending to no-show", db.StatusPending, db.StatusNoShow, false},
		{"completed is terminal", db.StatusCompleted, db.StatusConfirmed, false},
		{"cancelled is terminal", db.StatusCancelled, db.StatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := futureAt(4)
			bookings := &bookingStoreStub{byRef: map[string]*db.Booking{
				"BK-T": {ID: 3, OrgID: 10, SpaceID: 1, Reference: "BK-T", Status: tt.from,
					StartTime: start, EndTime: start.Add(time.Hour)},
			}}
			f := newOrchestrator(bookableSpace(), bookings, nil)

			booking, rejection, err := f.svc.TransitionBooking(context.Background(), 10, "BK-T", tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.allowed {
				if rejection != nil {
					t.Fatalf("unexpected rejection: %+v", rejection)
				}
				if booking.Status != tt.to {
					t.Errorf("status = %q, want %q", booking.Status, tt.to)
				}
			} else if rejection == nil || rejection.Code != entities.RejectPolicy {
				t.Errorf("rejection = %+v, want POLICY_VIOLATION", rejection)
			}
		})
	}
}

func TestGetAvailableSlotsRejectsBadDate(t *testing.T) {
	f := newOrchestrator(bookableSpace(), nil, nil)
	_, rejection, err := f.svc.GetAvailableSlots(context.Background(), 10, 1, "02-06-2025", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection == nil || rejection.Code != entities.RejectValidation {
		t.Errorf("rejection = %+v, want VALIDATION_FAILED for a malformed date", rejection)
	}
}

func TestGetAvailableSlotsMarksExistingBookings(t *testing.T) {
	day := futureAt(3)
	booked := db.Booking{StartTime: day, EndTime: day.Add(time.Hour), Status: db.StatusConfirmed}
	bookings := &bookingStoreStub{inRange: []db.Booking{booked}}
	f := newOrchestrator(bookableSpace(), bookings, nil)

	slots, rejection, err := f.svc.GetAvailableSlots(context.Background(), 10, 1, day.Format("2006-01-02"), 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejection != nil {
		t.Fatalf("unexpected rejection: %+v", rejection)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots for an open day")
	}
	var sawUnavailable bool
	for _, s := range slots {
		if s.StartTime.Before(booked.EndTime) && s.EndTime.After(booked.StartTime) {
			if s.IsAvailable {
				t.Errorf("slot %v-%v overlaps the booking but is marked available", s.StartTime, s.EndTime)
			}
			sawUnavailable = true
		}
	}
	if !sawUnavailable {
		t.Error("expected at least one slot overlapping the existing booking")
	}
}

func containsMatch(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
