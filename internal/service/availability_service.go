package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskhive/internal/db"
	"deskhive/internal/entities"
	"deskhive/internal/repository"
)

// policyKind is the capacity model of a space, resolved once per check
// instead of re-deriving it from field combinations at each site.
type policyKind int

const (
	policyUnlimited policyKind = iota
	policyPooled
	policyCounted
	policySingleUnit
)

type capacityPolicy struct {
	kind  policyKind
	limit int
}

// capacityPolicyFor maps a space's capacity fields to a tagged policy.
// Pooled takes precedence over any numeric capacity, so a pooled space with
// capacity 1 still books through unit assignment.
func capacityPolicyFor(space *db.Space) capacityPolicy {
	switch {
	case space.HasPooledUnits:
		return capacityPolicy{kind: policyPooled}
	case space.Capacity == nil:
		return capacityPolicy{kind: policyUnlimited}
	case *space.Capacity > 1:
		return capacityPolicy{kind: policyCounted, limit: *space.Capacity}
	default:
		return capacityPolicy{kind: policySingleUnit, limit: 1}
	}
}

// AvailabilityService decides whether a space has room for a requested
// [start,end) window and, for pooled spaces, which concrete unit to assign.
type AvailabilityService struct {
	Spaces   SpaceStore
	Bookings BookingStore
	Units    UnitStore
}

func NewAvailabilityService(spaces SpaceStore, bookings BookingStore, units UnitStore) *AvailabilityService {
	return &AvailabilityService{Spaces: spaces, Bookings: bookings, Units: units}
}

// CheckCapacity resolves the space, dispatches on its capacity policy and
// returns a structured decision. Business outcomes (not found, over capacity)
// come back in the result; only infrastructure failures surface as errors.
// excludeBookingID omits a booking from the overlap queries when re-checking
// during an update of that booking.
func (s *AvailabilityService) CheckCapacity(ctx context.Context, spaceID int64, start, end time.Time, orgID int64, excludeBookingID *int64) (*entities.CapacityResult, error) {
	space, err := s.Spaces.GetByID(ctx, spaceID, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &entities.CapacityResult{Reason: entities.ReasonNotFound}, nil
		}
		return nil, err
	}

	policy := capacityPolicyFor(space)
	switch policy.kind {
	case policyUnlimited:
		// No overlap query needed.
		return &entities.CapacityResult{Available: true}, nil

	case policyPooled:
		return s.checkPooled(ctx, space, start, end, excludeBookingID)

	default: // counted and single-unit differ only in the limit
		overlapping, err := s.Bookings.CountOverlapping(ctx, space.ID, space.OrgID, start, end, excludeBookingID)
		if err != nil {
			return nil, err
		}
		limit := policy.limit
		result := &entities.CapacityResult{
			Available: overlapping < limit,
			Details:   entities.CapacityDetails{Capacity: &limit, Overlapping: overlapping},
		}
		if !result.Available {
			result.Reason = entities.ReasonOverCapacity
		}
		return result, nil
	}
}

// checkPooled finds the first active unit not held by an overlapping active
// booking. No ordering beyond "any free unit" is promised. A pooled space
// with zero active units is unavailable regardless of its capacity number.
func (s *AvailabilityService) checkPooled(ctx context.Context, space *db.Space, start, end time.Time, excludeBookingID *int64) (*entities.CapacityResult, error) {
	units, err := s.Units.ListActive(ctx, space.ID, space.OrgID)
	if err != nil {
		return nil, err
	}
	poolSize := len(units)
	if poolSize == 0 {
		return &entities.CapacityResult{
			Reason:  entities.ReasonOverCapacity,
			Details: entities.CapacityDetails{Capacity: &poolSize},
		}, nil
	}

	bookedIDs, err := s.Bookings.BookedUnitIDs(ctx, space.ID, space.OrgID, start, end, excludeBookingID)
	if err != nil {
		return nil, err
	}
	booked := make(map[int64]bool, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = true
	}

	details := entities.CapacityDetails{Capacity: &poolSize, Overlapping: len(bookedIDs)}
	for _, u := range units {
		if !booked[u.ID] {
			unitID := u.ID
			details.AvailableUnitID = &unitID
			return &entities.CapacityResult{Available: true, Details: details}, nil
		}
	}
	return &entities.CapacityResult{Reason: entities.ReasonOverCapacity, Details: details}, nil
}

// AssignResourceUnit returns a free unit id for the window, or nil when the
// space is unavailable or not pooled.
func (s *AvailabilityService) AssignResourceUnit(ctx context.Context, spaceID int64, start, end time.Time, orgID int64) (*int64, error) {
	result, err := s.CheckCapacity(ctx, spaceID, start, end, orgID, nil)
	if err != nil {
		return nil, err
	}
	if !result.Available {
		return nil, nil
	}
	return result.Details.AvailableUnitID, nil
}

// GenerateResourceUnits tops a space's pool up to count units, numbering new
// labels after the existing ones ("Cabin #4".."Cabin #6" when 3 exist and 6
// are requested). Calling it again with the same count creates nothing.
func (s *AvailabilityService) GenerateResourceUnits(ctx context.Context, spaceID, orgID int64, count int, labelPrefix string) error {
	space, err := s.Spaces.GetByID(ctx, spaceID, orgID)
	if err != nil {
		return err
	}
	if labelPrefix == "" {
		labelPrefix = "Unit"
	}

	existing, err := s.Units.CountBySpace(ctx, space.ID, space.OrgID)
	if err != nil {
		return err
	}
	if existing >= count {
		return nil
	}

	units := make([]db.ResourceUnit, 0, count-existing)
	for i := existing + 1; i <= count; i++ {
		units = append(units, db.ResourceUnit{
			OrgID:   space.OrgID,
			SpaceID: space.ID,
			Label:   fmt.Sprintf("%s #%d", labelPrefix, i),
			Status:  db.UnitActive,
		})
	}
	return s.Units.CreateBulk(ctx, units)
}
