package entities

import "deskhive/internal/db"

// SpaceResponse is the API shape of a bookable space.
type SpaceResponse struct {
	ID                  int64  `json:"id"`
	LocationID          int64  `json:"location_id"`
	Name                string `json:"name"`
	Capacity            *int   `json:"capacity"`
	HasPooledUnits      bool   `json:"has_pooled_units"`
	MinBookingDuration  int    `json:"min_booking_duration,omitempty"`
	MaxBookingDuration  int    `json:"max_booking_duration,omitempty"`
	AdvanceBookingDays  int    `json:"advance_booking_days,omitempty"`
	AllowSameDayBooking bool   `json:"allow_same_day_booking"`
}

func NewSpaceResponse(s *db.Space) *SpaceResponse {
	return &SpaceResponse{
		ID:                  s.ID,
		LocationID:          s.LocationID,
		Name:                s.Name,
		Capacity:            s.Capacity,
		HasPooledUnits:      s.HasPooledUnits,
		MinBookingDuration:  s.MinBookingDuration,
		MaxBookingDuration:  s.MaxBookingDuration,
		AdvanceBookingDays:  s.AdvanceBookingDays,
		AllowSameDayBooking: s.AllowSameDayBooking,
	}
}

// ResourceUnitResponse is the API shape of one unit in a pooled space.
type ResourceUnitResponse struct {
	ID      int64  `json:"id"`
	SpaceID int64  `json:"space_id"`
	Label   string `json:"label"`
	Status  string `json:"status"`
}

func NewResourceUnitResponse(u *db.ResourceUnit) *ResourceUnitResponse {
	return &ResourceUnitResponse{ID: u.ID, SpaceID: u.SpaceID, Label: u.Label, Status: u.Status}
}
