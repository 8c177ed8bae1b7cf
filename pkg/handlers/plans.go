package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/middleware"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// PlanHandler serves the strategic plan and invitation routes.
type PlanHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewPlanHandler creates the strategic plan handler.
func NewPlanHandler(cfg *config.Config, service *planning.Service) *PlanHandler {
	return &PlanHandler{config: cfg, service: service}
}

// CreatePlan handles POST /api/strategic-plans. The authenticated user
// becomes the plan's first member.
func (h *PlanHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	var req models.StrategicPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := h.service.CreatePlan(r.Context(), user.ID, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Strategic plan created", plan)
}

// ListPlans handles GET /api/strategic-plans and returns the plans the
// authenticated user belongs to.
func (h *PlanHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	plans, err := h.service.ListPlansForUser(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Strategic plans retrieved", plans)
}

// GetPlan handles GET /api/strategic-plans/{id}.
func (h *PlanHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.GetPlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Strategic plan retrieved", plan)
}

// UpdatePlan handles PUT /api/strategic-plans/{id}.
func (h *PlanHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.StrategicPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}
	plan, err := h.service.UpdatePlan(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Strategic plan updated", plan)
}

// DeletePlan handles DELETE /api/strategic-plans/{id}.
func (h *PlanHandler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlan(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Strategic plan deleted", nil)
}

// SendInvitation handles POST /api/strategic-plans/sendInvitation.
func (h *PlanHandler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	var req models.SendInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.service.Invite(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Invitation sent", user)
}

// ResponseInvitation handles POST /api/strategic-plans/responseInvitation.
func (h *PlanHandler) ResponseInvitation(w http.ResponseWriter, r *http.Request) {
	var req models.ResponseInvitationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.service.Respond(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Invitation resolved", user)
}

// Invitations handles GET /api/strategic-plans/invitations/{userId}.
func (h *PlanHandler) Invitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.service.Invitations(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Invitations retrieved", invitations)
}
