package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// IndicatorHandler serves the indicator routes.
type IndicatorHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewIndicatorHandler creates the indicator handler.
func NewIndicatorHandler(cfg *config.Config, service *planning.Service) *IndicatorHandler {
	return &IndicatorHandler{config: cfg, service: service}
}

// Create handles POST /api/indicators/create/{activityId}.
func (h *IndicatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.IndicatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	indicator, err := h.service.CreateIndicator(r.Context(), chi.URLParam(r, "activityId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Indicator created", indicator)
}

// Get handles GET /api/indicators/getIndicator/{id}.
func (h *IndicatorHandler) Get(w http.ResponseWriter, r *http.Request) {
	indicator, err := h.service.GetIndicator(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Indicator retrieved", indicator)
}

// ListByActivity handles GET /api/indicators/getActivityIndicators/{activityId}.
func (h *IndicatorHandler) ListByActivity(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.service.ListIndicators(r.Context(), chi.URLParam(r, "activityId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Indicators retrieved", indicators)
}

// Update handles PUT /api/indicators/update/{id}.
func (h *IndicatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.IndicatorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	indicator, err := h.service.UpdateIndicator(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Indicator updated", indicator)
}

// Delete handles DELETE /api/indicators/delete/{id}.
func (h *IndicatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteIndicator(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Indicator deleted", nil)
}
