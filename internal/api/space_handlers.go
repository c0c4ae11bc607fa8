package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"deskhive/internal/auth"
	"deskhive/internal/db"
	"deskhive/internal/entities"
	"deskhive/internal/repository"
	"deskhive/internal/service"
)

// SpaceHandler covers the space listing and resource-unit administration
// surface.
type SpaceHandler struct {
	Availability *service.AvailabilityService
	Spaces       *repository.SpaceRepository
	Units        service.UnitStore
}

func NewSpaceHandler(availability *service.AvailabilityService, spaces *repository.SpaceRepository, units service.UnitStore) *SpaceHandler {
	return &SpaceHandler{Availability: availability, Spaces: spaces, Units: units}
}

// ListSpaces returns the spaces under a location.
func (h *SpaceHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	locationID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid location id", http.StatusBadRequest)
		return
	}

	spaces, err := h.Spaces.ListByLocation(r.Context(), locationID, orgID)
	if err != nil {
		log.Printf("Error listing spaces for location %d: %v", locationID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out := make([]*entities.SpaceResponse, 0, len(spaces))
	for i := range spaces {
		out = append(out, entities.NewSpaceResponse(&spaces[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"spaces": out})
}

// GenerateUnits bulk-creates resource units for a pooled space. The operation
// is idempotent: repeating it with the same count creates nothing new.
func (h *SpaceHandler) GenerateUnits(w http.ResponseWriter, r *http.Request) {
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

	var req GenerateUnitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Count <= 0 {
		http.Error(w, "count must be positive", http.StatusBadRequest)
		return
	}

	if err := h.Availability.GenerateResourceUnits(r.Context(), spaceID, orgID, req.Count, req.LabelPrefix); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Space not found", http.StatusNotFound)
			return
		}
		log.Printf("Error generating units for space %d: %v", spaceID, err)
		http.Error(w, "Could not generate resource units", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Resource units generated"})
}

func (h *SpaceHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
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

	units, err := h.Units.ListBySpace(r.Context(), spaceID, orgID)
	if err != nil {
		log.Printf("Error listing units for space %d: %v", spaceID, err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	out := make([]*entities.ResourceUnitResponse, 0, len(units))
	for i := range units {
		out = append(out, entities.NewResourceUnitResponse(&units[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"units": out})
}

// UpdateUnitStatus disables or re-enables a resource unit. Disabled units
// drop out of availability without being deleted.
func (h *SpaceHandler) UpdateUnitStatus(w http.ResponseWriter, r *http.Request) {
	orgID, ok := auth.OrgID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	unitID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid unit id", http.StatusBadRequest)
		return
	}

	var req UnitStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Status != db.UnitActive && req.Status != db.UnitDisabled {
		http.Error(w, "status must be active or disabled", http.StatusBadRequest)
		return
	}

	if err := h.Units.UpdateStatus(r.Context(), unitID, orgID, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Resource unit not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating unit %d: %v", unitID, err)
		http.Error(w, "Could not update resource unit", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Resource unit updated"})
}
