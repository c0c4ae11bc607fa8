package api

import (
	"encoding/json"
	"net/http"
	"time"

	"deskhive/internal/entities"
)

// CheckCapacityRequest asks whether a space can take a booking for a window.
type CheckCapacityRequest struct {
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	ExcludeBookingID *int64    `json:"exclude_booking_id,omitempty"`
}

// GenerateUnitsRequest tops a pooled space's unit pool up to Count.
type GenerateUnitsRequest struct {
	Count       int    `json:"count"`
	LabelPrefix string `json:"label_prefix"`
}

type UnitStatusRequest struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeRejection maps a business rejection onto the HTTP status the rule
// implies: missing resources are 404, rule violations 422, capacity
// conflicts 409.
func writeRejection(w http.ResponseWriter, rejection *entities.BookingRejection) {
	status := http.StatusUnprocessableEntity
	switch rejection.Code {
	case entities.RejectNotFound:
		status = http.StatusNotFound
	case entities.RejectOverCapacity:
		status = http.StatusConflict
	}
	writeJSON(w, status, rejection)
}
