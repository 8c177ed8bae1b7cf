package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// GoalHandler serves the goal routes.
type GoalHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewGoalHandler creates the goal handler.
func NewGoalHandler(cfg *config.Config, service *planning.Service) *GoalHandler {
	return &GoalHandler{config: cfg, service: service}
}

// Create handles POST /api/goals/create/{objectiveId}.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	goal, err := h.service.CreateGoal(r.Context(), chi.URLParam(r, "objectiveId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Goal created", goal)
}

// ListByObjective handles GET /api/goals/getObjectiveGoals/{id}.
func (h *GoalHandler) ListByObjective(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.ListGoals(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Goals retrieved", goals)
}

// ListByPlan handles GET /api/goals/getPlanGoals/{planId} and gathers
// the goals of every objective under the plan.
func (h *GoalHandler) ListByPlan(w http.ResponseWriter, r *http.Request) {
	goals, err := h.service.ListPlanGoals(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Goals retrieved", goals)
}

// Update handles PUT /api/goals/update/{goalId}.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.GoalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	goal, err := h.service.UpdateGoal(r.Context(), chi.URLParam(r, "goalId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Goal updated", goal)
}

// Delete handles DELETE /api/goals/delete/{goalId}.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGoal(r.Context(), chi.URLParam(r, "goalId")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Goal deleted", nil)
}
