package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// ObjectiveHandler serves the objective routes.
type ObjectiveHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewObjectiveHandler creates the objective handler.
func NewObjectiveHandler(cfg *config.Config, service *planning.Service) *ObjectiveHandler {
	return &ObjectiveHandler{config: cfg, service: service}
}

// Create handles POST /api/objectives/create/{planId}.
func (h *ObjectiveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ObjectiveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	objective, err := h.service.CreateObjective(r.Context(), chi.URLParam(r, "planId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Objective created", objective)
}

// Get handles GET /api/objectives/getObjective/{id}.
func (h *ObjectiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	objective, err := h.service.GetObjective(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Objective retrieved", objective)
}

// ListByPlan handles GET /api/objectives/getPlanObjectives/{planId}.
func (h *ObjectiveHandler) ListByPlan(w http.ResponseWriter, r *http.Request) {
	objectives, err := h.service.ListObjectives(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Objectives retrieved", objectives)
}

// Update handles PUT /api/objectives/update/{id}.
func (h *ObjectiveHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.ObjectiveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	objective, err := h.service.UpdateObjective(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Objective updated", objective)
}

// Delete handles DELETE /api/objectives/delete/{id}.
func (h *ObjectiveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteObjective(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Objective deleted", nil)
}
