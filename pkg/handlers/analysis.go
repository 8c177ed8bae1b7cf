package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// AnalysisHandler serves the SWOT/CAME card routes.
type AnalysisHandler struct {
	config  *config.Config
	service *planning.Service
}

// NewAnalysisHandler creates the analysis handler.
func NewAnalysisHandler(cfg *config.Config, service *planning.Service) *AnalysisHandler {
	return &AnalysisHandler{config: cfg, service: service}
}

// AddCard handles POST /api/analysis/{category}/addCardAnalysis/{planId}.
func (h *AnalysisHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	category := models.AnalysisCategory(chi.URLParam(r, "category"))
	var req models.CardAnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	card, err := h.service.AddCard(r.Context(), category, chi.URLParam(r, "planId"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "Card added", card)
}

// DeleteCard handles POST /api/analysis/{category}/deleteCard/{id}.
// The category segment is part of the route shape; the card itself
// records which list it belongs to.
func (h *AnalysisHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	category := models.AnalysisCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		writeServiceError(w, r, planning.ErrUnknownCategory)
		return
	}
	if err := h.service.DeleteCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Card deleted", nil)
}

// AllAnalysis handles GET /api/analysis/allAnalisis/{planId}. The path
// spelling is part of the public API contract.
func (h *AnalysisHandler) AllAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.PlanAnalysis(r.Context(), chi.URLParam(r, "planId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Analysis retrieved", analysis)
}
