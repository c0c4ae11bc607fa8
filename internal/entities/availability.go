package entities

// Reasons a capacity check can fail. NOT_FOUND distinguishes a missing or
// foreign-organization space from a full one.
const (
	ReasonNotFound     = "NOT_FOUND"
	ReasonOverCapacity = "OVER_CAPACITY"
)

// CapacityDetails carries diagnostic counts alongside a capacity decision.
type CapacityDetails struct {
	// Capacity is nil for unlimited spaces.
	Capacity    *int `json:"capacity"`
	Overlapping int  `json:"overlapping"`
	// AvailableUnitID is set for pooled spaces when a free unit was found.
	AvailableUnitID *int64 `json:"available_unit_id,omitempty"`
}

// CapacityResult is the structured outcome of a capacity check. Business
// conditions are reported here, never as Go errors.
type CapacityResult struct {
	Available bool            `json:"available"`
	Reason    string          `json:"reason,omitempty"`
	Details   CapacityDetails `json:"details"`
}
