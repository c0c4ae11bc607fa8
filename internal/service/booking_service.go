package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"deskhive/internal/db"
	"deskhive/internal/entities"
	"deskhive/internal/repository"
	"deskhive/internal/utils"
)

// Sender delivers booking notifications. Implementations must never block
// the booking path on delivery.
type Sender interface {
	BookingCreated(booking *db.Booking, contact *db.Contact, space *db.Space, location *db.Location)
	BookingCancelled(booking *db.Booking, contact *db.Contact, space *db.Space, location *db.Location)
}

// SlotCache caches availability slot responses. A nil cache disables caching.
type SlotCache interface {
	GetSlots(ctx context.Context, key string) ([]utils.TimeSlot, bool)
	SetSlots(ctx context.Context, key string, slots []utils.TimeSlot)
}

// BookingService validates and persists bookings, composing TimeValidation
// and the availability engine with space-level business rules.
type BookingService struct {
	Spaces       SpaceStore
	Locations    LocationStore
	Contacts     ContactStore
	Bookings     BookingStore
	Availability *AvailabilityService
	Sender       Sender
	Cache        SlotCache

	now func() time.Time
}

func NewBookingService(spaces SpaceStore, locations LocationStore, contacts ContactStore, bookings BookingStore, availability *AvailabilityService, sender Sender, cache SlotCache) *BookingService {
	return &BookingService{
		Spaces:       spaces,
		Locations:    locations,
		Contacts:     contacts,
		Bookings:     bookings,
		Availability: availability,
		Sender:       sender,
		Cache:        cache,
		now:          time.Now,
	}
}

// CreateBooking runs the full acceptance sequence: space and location
// resolution, timing legality, contact check, duration and attendee bounds,
// capacity, a redundant space-level advance/same-day re-check, then
// persistence as a pending booking. Business failures come back as a
// rejection; only infrastructure failures are errors.
func (s *BookingService) CreateBooking(ctx context.Context, orgID int64, req *entities.CreateBookingRequest) (*entities.BookingResponse, *entities.BookingRejection, error) {
	space, location, rejection, err := s.resolveSpace(ctx, req.SpaceID, orgID)
	if rejection != nil || err != nil {
		return nil, rejection, err
	}

	start, end := req.Start(), req.End()

	cfg := utils.ValidationConfig{
		RespectOperatingHours: true,
		MaximumAdvanceDays:    space.AdvanceBookingDays,
	}
	validation := utils.ValidateBookingTime(start, end, location, cfg)
	if !validation.IsValid {
		return nil, &entities.BookingRejection{
			Code:                  entities.RejectValidation,
			Errors:                validation.Errors,
			Warnings:              validation.Warnings,
			MinimumAdvanceMinutes: utils.DefaultMinimumAdvanceMinutes,
			MaximumAdvanceDays:    effectiveAdvanceDays(space),
			TimeUntilBooking:      &validation.TimeUntilBooking,
		}, nil
	}

	if req.ContactID != nil {
		if _, err := s.Contacts.GetByID(ctx, *req.ContactID, orgID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "contact not found"}, nil
			}
			return nil, nil, err
		}
	}

	if ruleErrs := s.checkSpaceRules(space, start, end, req.AttendeeCount); len(ruleErrs) > 0 {
		return nil, &entities.BookingRejection{Code: entities.RejectValidation, Errors: ruleErrs}, nil
	}

	capacity, err := s.Availability.CheckCapacity(ctx, space.ID, start, end, orgID, nil)
	if err != nil {
		return nil, nil, err
	}
	if !capacity.Available {
		return nil, s.conflictRejection(ctx, space, start, end, nil), nil
	}

	// Defense in depth: the advance-day and same-day policies are re-checked
	// against the space's own settings, which may differ from the
	// location-level defaults used above.
	if redundant := s.recheckSpacePolicies(space, location, start); redundant != nil {
		return nil, redundant, nil
	}

	booking := &db.Booking{
		OrgID:          orgID,
		SpaceID:        space.ID,
		ResourceUnitID: capacity.Details.AvailableUnitID,
		ContactID:      req.ContactID,
		Reference:      utils.NewBookingReference(utils.DefaultReferencePrefix),
		StartTime:      start,
		EndTime:        end,
		Status:         db.StatusPending,
		AttendeeCount:  req.AttendeeCount,
		TotalAmount:    req.TotalAmount,
		PaymentStatus:  db.PaymentPending,
		CheckedIn:      false,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		// A concurrent create can win the window between the capacity check
		// and this insert; the database constraint reports it as a conflict.
		if isConstraintViolation(err) {
			return nil, s.conflictRejection(ctx, space, start, end, nil), nil
		}
		return nil, nil, fmt.Errorf("error creating booking: %w", err)
	}

	s.notifyCreated(ctx, booking, space, location)
	return entities.NewBookingResponse(booking), nil, nil
}

// UpdateBooking reschedules a booking. The modification window (4h default)
// must hold, and the capacity re-check excludes the booking's own id.
func (s *BookingService) UpdateBooking(ctx context.Context, orgID int64, reference string, req *entities.UpdateBookingRequest) (*entities.BookingResponse, *entities.BookingRejection, error) {
	booking, err := s.Bookings.GetByReference(ctx, reference, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "booking not found"}, nil
		}
		return nil, nil, err
	}
	if booking.Status != db.StatusPending && booking.Status != db.StatusConfirmed {
		return nil, &entities.BookingRejection{
			Code:   entities.RejectPolicy,
			Reason: fmt.Sprintf("a %s booking cannot be modified", booking.Status),
		}, nil
	}

	space, location, rejection, err := s.resolveSpace(ctx, booking.SpaceID, orgID)
	if rejection != nil || err != nil {
		return nil, rejection, err
	}

	modify := utils.CanModifyBooking(booking.StartTime, location.Timezone, 0)
	if !modify.CanModify {
		hours := modify.HoursRemaining
		return nil, &entities.BookingRejection{
			Code:           entities.RejectPolicy,
			Reason:         modify.Reason,
			HoursRemaining: &hours,
		}, nil
	}

	start, end := booking.StartTime, booking.EndTime
	if v := req.Start(); v != nil {
		start = *v
	}
	if v := req.End(); v != nil {
		end = *v
	}
	attendees := booking.AttendeeCount
	if req.AttendeeCount != nil {
		attendees = *req.AttendeeCount
	}

	cfg := utils.ValidationConfig{
		RespectOperatingHours: true,
		MaximumAdvanceDays:    space.AdvanceBookingDays,
	}
	validation := utils.ValidateBookingTime(start, end, location, cfg)
	if !validation.IsValid {
		return nil, &entities.BookingRejection{
			Code:                  entities.RejectValidation,
			Errors:                validation.Errors,
			Warnings:              validation.Warnings,
			MinimumAdvanceMinutes: utils.DefaultMinimumAdvanceMinutes,
			MaximumAdvanceDays:    effectiveAdvanceDays(space),
			TimeUntilBooking:      &validation.TimeUntilBooking,
		}, nil
	}

	if ruleErrs := s.checkSpaceRules(space, start, end, attendees); len(ruleErrs) > 0 {
		return nil, &entities.BookingRejection{Code: entities.RejectValidation, Errors: ruleErrs}, nil
	}

	capacity, err := s.Availability.CheckCapacity(ctx, space.ID, start, end, orgID, &booking.ID)
	if err != nil {
		return nil, nil, err
	}
	if !capacity.Available {
		return nil, s.conflictRejection(ctx, space, start, end, &booking.ID), nil
	}

	if err := s.Bookings.UpdateSchedule(ctx, booking.ID, start, end, capacity.Details.AvailableUnitID, attendees); err != nil {
		return nil, nil, fmt.Errorf("error rescheduling booking: %w", err)
	}

	booking.StartTime = start
	booking.EndTime = end
	booking.ResourceUnitID = capacity.Details.AvailableUnitID
	booking.AttendeeCount = attendees
	booking.UpdatedAt = s.now()
	return entities.NewBookingResponse(booking), nil, nil
}

// CancelBooking soft-deletes a booking by moving it to cancelled, recording
// the reason. The cancellation window (2h default) must hold.
func (s *BookingService) CancelBooking(ctx context.Context, orgID int64, reference, reason string) (*entities.BookingResponse, *entities.BookingRejection, error) {
	booking, err := s.Bookings.GetByReference(ctx, reference, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "booking not found"}, nil
		}
		return nil, nil, err
	}
	if !db.CanTransition(booking.Status, db.StatusCancelled) {
		return nil, &entities.BookingRejection{
			Code:   entities.RejectPolicy,
			Reason: fmt.Sprintf("a %s booking cannot be cancelled", booking.Status),
		}, nil
	}

	space, location, rejection, err := s.resolveSpace(ctx, booking.SpaceID, orgID)
	if rejection != nil || err != nil {
		return nil, rejection, err
	}

	cancel := utils.CanCancelBooking(booking.StartTime, location.Timezone, 0)
	if !cancel.CanCancel {
		hours := cancel.HoursRemaining
		return nil, &entities.BookingRejection{
			Code:           entities.RejectPolicy,
			Reason:         cancel.Reason,
			HoursRemaining: &hours,
		}, nil
	}

	if err := s.Bookings.UpdateStatus(ctx, booking.ID, db.StatusCancelled, reason); err != nil {
		return nil, nil, fmt.Errorf("error cancelling booking: %w", err)
	}
	booking.Status = db.StatusCancelled
	booking.CancellationReason = reason
	booking.UpdatedAt = s.now()

	s.notifyCancelled(ctx, booking, space, location)
	return entities.NewBookingResponse(booking), nil, nil
}

// TransitionBooking applies an externally-triggered status move (confirm,
// complete, no-show) through the guarded state machine.
func (s *BookingService) TransitionBooking(ctx context.Context, orgID int64, reference, to string) (*entities.BookingResponse, *entities.BookingRejection, error) {
	booking, err := s.Bookings.GetByReference(ctx, reference, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "booking not found"}, nil
		}
		return nil, nil, err
	}
	if !db.CanTransition(booking.Status, to) {
		return nil, &entities.BookingRejection{
			Code:   entities.RejectPolicy,
			Reason: fmt.Sprintf("cannot transition a %s booking to %s", booking.Status, to),
		}, nil
	}
	if err := s.Bookings.UpdateStatus(ctx, booking.ID, to, ""); err != nil {
		return nil, nil, fmt.Errorf("error transitioning booking: %w", err)
	}
	booking.Status = to
	booking.UpdatedAt = s.now()
	return entities.NewBookingResponse(booking), nil, nil
}

// GetBooking resolves one booking by reference.
func (s *BookingService) GetBooking(ctx context.Context, orgID int64, reference string) (*entities.BookingResponse, error) {
	booking, err := s.Bookings.GetByReference(ctx, reference, orgID)
	if err != nil {
		return nil, err
	}
	return entities.NewBookingResponse(booking), nil
}

// ListBookings pages an organization's bookings.
func (s *BookingService) ListBookings(ctx context.Context, orgID int64, filter repository.ListFilter) (*entities.BookingsList, error) {
	bookings, total, err := s.Bookings.List(ctx, orgID, filter)
	if err != nil {
		return nil, err
	}
	list := &entities.BookingsList{Total: total, Limit: filter.Limit, Offset: filter.Offset}
	if list.Limit <= 0 {
		list.Limit = 50
	}
	for i := range bookings {
		list.Bookings = append(list.Bookings, entities.NewBookingResponse(&bookings[i]))
	}
	return list, nil
}

// GetAvailableSlots generates candidate slots for a space on a calendar day
// (location-local), marking those taken by existing active bookings. Results
// are served from a short-TTL cache when one is configured; correctness never
// depends on it because creation re-checks capacity against the database.
func (s *BookingService) GetAvailableSlots(ctx context.Context, orgID, spaceID int64, dateStr string, durationMinutes int) ([]utils.TimeSlot, *entities.BookingRejection, error) {
	space, location, rejection, err := s.resolveSpace(ctx, spaceID, orgID)
	if rejection != nil || err != nil {
		return nil, rejection, err
	}

	loc := time.Local
	if l, locErr := time.LoadLocation(location.Timezone); locErr == nil {
		loc = l
	}
	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, &entities.BookingRejection{
			Code:   entities.RejectValidation,
			Errors: []string{"date must be formatted as YYYY-MM-DD"},
		}, nil
	}

	cacheKey := fmt.Sprintf("slots:%d:%s:%d", space.ID, dateStr, durationMinutes)
	if s.Cache != nil {
		if slots, ok := s.Cache.GetSlots(ctx, cacheKey); ok {
			return slots, nil, nil
		}
	}

	dayEnd := day.Add(24 * time.Hour)
	bookings, err := s.Bookings.ListForRange(ctx, space.ID, orgID, day, dayEnd)
	if err != nil {
		return nil, nil, err
	}
	windows := make([]utils.BookingWindow, 0, len(bookings))
	for _, b := range bookings {
		windows = append(windows, utils.BookingWindow{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	slots := utils.GenerateAvailableTimeSlots(day, durationMinutes, location, windows)
	if s.Cache != nil {
		s.Cache.SetSlots(ctx, cacheKey, slots)
	}
	return slots, nil, nil
}

// resolveSpace loads a space and its owning location, mapping missing rows to
// a NOT_FOUND rejection.
func (s *BookingService) resolveSpace(ctx context.Context, spaceID, orgID int64) (*db.Space, *db.Location, *entities.BookingRejection, error) {
	space, err := s.Spaces.GetByID(ctx, spaceID, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "space not found"}, nil
		}
		return nil, nil, nil, err
	}
	location, err := s.Locations.GetByID(ctx, space.LocationID, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &entities.BookingRejection{Code: entities.RejectNotFound, Reason: "location not found"}, nil
		}
		return nil, nil, nil, err
	}
	return space, location, nil, nil
}

// checkSpaceRules aggregates the duration-bound and attendee-capacity rules
// so the caller sees every violation at once.
func (s *BookingService) checkSpaceRules(space *db.Space, start, end time.Time, attendees int) []string {
	var errs []string
	duration := int(end.Sub(start).Minutes())
	if space.MinBookingDuration > 0 && duration < space.MinBookingDuration {
		errs = append(errs, fmt.Sprintf("booking duration must be at least %d minutes", space.MinBookingDuration))
	}
	if space.MaxBookingDuration > 0 && duration > space.MaxBookingDuration {
		errs = append(errs, fmt.Sprintf("booking duration cannot exceed %d minutes", space.MaxBookingDuration))
	}
	if space.Capacity != nil && attendees > *space.Capacity {
		errs = append(errs, fmt.Sprintf("attendee count %d exceeds space capacity %d", attendees, *space.Capacity))
	}
	return errs
}

// recheckSpacePolicies re-runs the advance-day-limit and same-day rules
// against the space's own settings, which override the location defaults.
func (s *BookingService) recheckSpacePolicies(space *db.Space, location *db.Location, start time.Time) *entities.BookingRejection {
	loc := time.Local
	if l, err := time.LoadLocation(location.Timezone); err == nil {
		loc = l
	}
	now := s.now().In(loc)

	if space.AdvanceBookingDays > 0 {
		limit := now.Add(time.Duration(space.AdvanceBookingDays) * 24 * time.Hour)
		if start.After(limit) {
			return &entities.BookingRejection{
				Code:               entities.RejectValidation,
				Errors:             []string{fmt.Sprintf("this space only accepts bookings up to %d days in advance", space.AdvanceBookingDays)},
				MaximumAdvanceDays: space.AdvanceBookingDays,
			}
		}
	}

	localStart := start.In(loc)
	if !space.AllowSameDayBooking &&
		localStart.Year() == now.Year() && localStart.Month() == now.Month() && localStart.Day() == now.Day() {
		return &entities.BookingRejection{
			Code:   entities.RejectValidation,
			Errors: []string{"same-day bookings are not allowed for this space"},
		}
	}
	return nil
}

// conflictRejection builds an OVER_CAPACITY rejection carrying the
// identifying info of the bookings blocking the window.
func (s *BookingService) conflictRejection(ctx context.Context, space *db.Space, start, end time.Time, excludeID *int64) *entities.BookingRejection {
	rejection := &entities.BookingRejection{
		Code:   entities.RejectOverCapacity,
		Reason: entities.ReasonOverCapacity,
	}
	conflicts, err := s.Bookings.ListOverlapping(ctx, space.ID, space.OrgID, start, end, excludeID)
	if err != nil {
		// The rejection stands even when the diagnostic listing fails.
		return rejection
	}
	for _, c := range conflicts {
		rejection.Conflicts = append(rejection.Conflicts, entities.ConflictInfo{
			Reference: c.Reference,
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
			Status:    c.Status,
		})
	}
	return rejection
}

func (s *BookingService) notifyCreated(ctx context.Context, booking *db.Booking, space *db.Space, location *db.Location) {
	if s.Sender == nil || booking.ContactID == nil {
		return
	}
	contact, err := s.Contacts.GetByID(ctx, *booking.ContactID, booking.OrgID)
	if err != nil {
		return
	}
	s.Sender.BookingCreated(booking, contact, space, location)
}

func (s *BookingService) notifyCancelled(ctx context.Context, booking *db.Booking, space *db.Space, location *db.Location) {
	if s.Sender == nil || booking.ContactID == nil {
		return
	}
	contact, err := s.Contacts.GetByID(ctx, *booking.ContactID, booking.OrgID)
	if err != nil {
		return
	}
	s.Sender.BookingCancelled(booking, contact, space, location)
}

// isConstraintViolation reports whether err is a Postgres integrity
// constraint failure (unique or exclusion), the storage-level arbiter for
// concurrent bookings of the same window.
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Class() == "23"
}

func effectiveAdvanceDays(space *db.Space) int {
	if space.AdvanceBookingDays > 0 {
		return space.AdvanceBookingDays
	}
	return utils.DefaultMaximumAdvanceDays
}
