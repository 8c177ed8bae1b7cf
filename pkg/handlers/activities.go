package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// ActivityHandler serves the activity routes.
type ActivityHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewActivityHandler creates the activity handler.
func NewActivityHandler(cfg *config.Config, service *planning.Service) *ActivityHandler {
	return &ActivityHandler{config: cfg, service: service}
}

// Create handles POST /api/activities/create/{goalId}.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	activity, err := h.service.CreateActivity(r.Context(), chi.URLParam(r, "goalId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Activity created", activity)
}

// Get handles GET /api/activities/getActivity/{id}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	activity, err := h.service.GetActivity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Activity retrieved", activity)
}

// ListByGoal handles GET /api/activities/getGoalActivities/{goalId}.
func (h *ActivityHandler) ListByGoal(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.ListActivities(r.Context(), chi.URLParam(r, "goalId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Activities retrieved", activities)
}

// Update handles PUT /api/activities/update/{id}.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	activity, err := h.service.UpdateActivity(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Activity updated", activity)
}

// Delete handles DELETE /api/activities/delete/{id}.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteActivity(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Activity deleted", nil)
}
