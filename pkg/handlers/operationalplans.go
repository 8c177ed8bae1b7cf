package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// OperationalPlanHandler serves the operational plan routes.
type OperationalPlanHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewOperationalPlanHandler creates the operational plan handler.
func NewOperationalPlanHandler(cfg *config.Config, service *planning.Service) *OperationalPlanHandler {
	return &OperationalPlanHandler{config: cfg, service: service}
}

// Create handles POST /api/operational-plans/create/{planId}.
func (h *OperationalPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.OperationalPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	op, err := h.service.CreateOperationalPlan(r.Context(), chi.URLParam(r, "planId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Operational plan created", op)
}

// Get handles GET /api/operational-plans/getOperationalPlan/{id}.
func (h *OperationalPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	op, err := h.service.GetOperationalPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Operational plan retrieved", op)
}

// ListByPlan handles GET /api/operational-plans/getPlanOperationalPlans/{planId}.
func (h *OperationalPlanHandler) ListByPlan(w http.ResponseWriter, r *http.Request) {
	ops, err := h.service.ListOperationalPlans(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Operational plans retrieved", ops)
}

// Update handles PUT /api/operational-plans/update/{id}.
func (h *OperationalPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.OperationalPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	op, err := h.service.UpdateOperationalPlan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Operational plan updated", op)
}

// SetActive handles PUT /api/operational-plans/setActive/{id}.
func (h *OperationalPlanHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	op, err := h.service.SetActiveOperationalPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Operational plan activated", op)
}

// Delete handles DELETE /api/operational-plans/delete/{id}.
func (h *OperationalPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOperationalPlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Operational plan deleted", nil)
}
