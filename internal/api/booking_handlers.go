package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"deskhive/internal/auth"
	"deskhive/internal/entities"
	apperrors "deskhive/internal/errors"
	"deskhive/internal/repository"
	"deskhive/internal/service"
)

type BookingHandler struct {
	Service      *service.BookingService
	Availability *service.AvailabilityService
}

func NewBookingHandler(svc *service.BookingService, availability *service.AvailabilityService) *BookingHandler {
	return &BookingHandler{Service: svc, Availability: availability}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, rejection, err := h.Service.CreateBooking(r.Context(), orgID, &req)
	if err != nil {
		log.Printf("Error creating booking: %v", err)
		http.Error(w, "Error creating booking", http.StatusInternalServerError)
		return
	}
	if rejection != nil {
		writeRejection(w, rejection)
		return
	}
	if userID, ok := auth.UserID(r.Context()); ok {
		log.Printf("Booking %s created by user %d", booking.Reference, userID)
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	reference := mux.Vars(r)["ref"]

	booking, err := h.Service.GetBooking(r.Context(), orgID, reference)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			apperrors.ErrNotFound("booking not found").Write(w)
			return
		}
		log.Printf("Error fetching booking %s: %v", reference, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := repository.ListFilter{Status: r.URL.Query().Get("status")}
	if v := r.URL.Query().Get("space_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "Invalid space_id", http.StatusBadRequest)
			return
		}
		filter.SpaceID = &id
	}
	if v := r.URL.Query().Get("date"); v != "" {
		day, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid date", http.StatusBadRequest)
			return
		}
		filter.Day = &day
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	list, err := h.Service.ListBookings(r.Context(), orgID, filter)
	if err != nil {
		log.Printf("Error listing bookings: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	reference := mux.Vars(r)["ref"]

	var req entities.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	booking, rejection, err := h.Service.UpdateBooking(r.Context(), orgID, reference, &req)
	if err != nil {
		log.Printf("Error updating booking %s: %v", reference, err)
		http.Error(w, "Could not update booking", http.StatusInternalServerError)
		return
	}
	if rejection != nil {
		writeRejection(w, rejection)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	reference := mux.Vars(r)["ref"]

	var req entities.CancelBookingRequest
	if r.Body != nil {
		// The cancellation reason is optional; an empty body is fine.
		json.NewDecoder(r.Body).Decode(&req)
	}

	booking, rejection, err := h.Service.CancelBooking(r.Context(), orgID, reference, req.Reason)
	if err != nil {
		log.Printf("Error cancelling booking %s: %v", reference, err)
		http.Error(w, "Could not cancel booking", http.StatusInternalServerError)
		return
	}
	if rejection != nil {
		writeRejection(w, rejection)
		return
	}
	if userID, ok := auth.UserID(r.Context()); ok {
		log.Printf("Booking %s cancelled by user %d", reference, userID)
	}
	writeJSON(w, http.StatusOK, booking)
}

// Transition handles confirm/complete/no-show, all externally-triggered moves
// through the booking state machine.
func (h *BookingHandler) Transition(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgID, ok := auth.OrgID(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		reference := mux.Vars(r)["ref"]

		booking, rejection, err := h.Service.TransitionBooking(r.Context(), orgID, reference, status)
		if err != nil {
			log.Printf("Error transitioning booking %s to %s: %v", reference, status, err)
			http.Error(w, "Could not update booking status", http.StatusInternalServerError)
			return
		}
		if rejection != nil {
			writeRejection(w, rejection)
			return
		}
		writeJSON(w, http.StatusOK, booking)
	}
}

// AvailabilitySlots returns candidate time slots for a space on a day.
func (h *BookingHandler) AvailabilitySlots(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spaceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid space id", http.StatusBadRequest)
		return
	}
	date := r.URL.Query().Get("date")
	duration := 60
	if v := r.URL.Query().Get("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil || duration <= 0 {
			http.Error(w, "Invalid duration", http.StatusBadRequest)
			return
		}
	}

	slots, rejection, err := h.Service.GetAvailableSlots(r.Context(), orgID, spaceID, date, duration)
	if err != nil {
		log.Printf("Error generating slots for space %d: %v", spaceID, err)
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	if rejection != nil {
		writeRejection(w, rejection)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"slots": slots})
}

// CheckCapacity exposes the availability engine's capacity decision.
func (h *BookingHandler) CheckCapacity(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	spaceID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid space id", http.StatusBadRequest)
		return
	}
	var req CheckCapacityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !req.EndTime.After(req.StartTime) {
		http.Error(w, "end_time must be after start_time", http.StatusBadRequest)
		return
	}

	result, err := h.Availability.CheckCapacity(r.Context(), spaceID, req.StartTime, req.EndTime, orgID, req.ExcludeBookingID)
	if err != nil {
		log.Printf("Error checking capacity for space %d: %v", spaceID, err)
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if result.Reason == entities.ReasonNotFound {
		status = http.StatusNotFound
	}
	writeJSON(w, status, result)
}
