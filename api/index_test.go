package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/database"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	cfg := &config.Config{
		Environment: "development",
		Port:        "3000",
		JWTSecret:   "test-secret-for-router-tests",
		DataDir:     t.TempDir(),
	}
	store, err := database.NewLocalStore(cfg.DataDir)
	require.NoError(t, err)
	return NewRouter(cfg, store)
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	}
	return rec, envelope
}

func dataField(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %v", envelope)
	return data
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", envelope["message"])
}

func TestAuthRequired(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodGet, "/api/strategic-plans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, router, http.MethodGet, "/api/strategic-plans", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(t)
	rec, envelope := doJSON(t, router, http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, envelope["message"], "Route not found")
}

func TestRegisterRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/users", "", map[string]interface{}{
		"name":     "ana",
		"email":    "ana@example.com",
		"password": "password123",
		"isAdmin":  true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFullPlanningLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Register and login.
	rec, envelope := doJSON(t, router, http.MethodPost, "/api/users", "", map[string]string{
		"name": "ana", "email": "ana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/users", "", map[string]string{
		"name": "ana2", "email": "ana@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "duplicate email")

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code, envelope)
	login := dataField(t, envelope)
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)
	user := login["user"].(map[string]interface{})
	userID := user["id"].(string)

	// Create a plan; the creator becomes a member.
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/strategic-plans", token, map[string]string{
		"name": "Plan 2026", "endDate": "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)
	plan := dataField(t, envelope)
	planID := plan["id"].(string)
	assert.Contains(t, plan["members_ListIDS"], userID)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/strategic-plans", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	plans := envelope["data"].([]interface{})
	assert.Len(t, plans, 1)

	// Objective under the plan.
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/objectives/create/"+planID, token, map[string]string{
		"title": "Grow enrollment", "responsible": userID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)
	objective := dataField(t, envelope)
	objectiveID := objective["id"].(string)

	// Goal under the objective bumps the counters.
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/goals/create/"+objectiveID, token, map[string]string{
		"description": "raise applications",
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)
	goal := dataField(t, envelope)
	goalID := goal["id"].(string)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/objectives/getObjective/"+objectiveID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	objective = dataField(t, envelope)
	assert.Equal(t, float64(1), objective["totalGoals"])
	assert.Contains(t, objective["goals_ListIDS"], goalID)

	// Deleting the goal restores the counters.
	rec, _ = doJSON(t, router, http.MethodDelete, "/api/goals/delete/"+goalID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/objectives/getObjective/"+objectiveID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	objective = dataField(t, envelope)
	assert.Equal(t, float64(0), objective["totalGoals"])

	// Missing documents come back as a standardized 404.
	rec, envelope = doJSON(t, router, http.MethodGet, "/api/strategic-plans/000000000000000000000000", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resource not found", envelope["message"])
}

func TestAnalysisRoutes(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/users", "", map[string]string{
		"name": "ana", "email": "ana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)
	rec, envelope = doJSON(t, router, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := dataField(t, envelope)["access_token"].(string)

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/strategic-plans", token, map[string]string{
		"name": "Plan 2026", "endDate": "2026-12-31",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	planID := dataField(t, envelope)["id"].(string)

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/analysis/strengths/addCardAnalysis/"+planID, token, map[string]string{
		"title": "strong faculty",
	})
	require.Equal(t, http.StatusCreated, rec.Code, envelope)
	cardID := dataField(t, envelope)["id"].(string)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/analysis/momentum/addCardAnalysis/"+planID, token, map[string]string{
		"title": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "unknown category")

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/analysis/allAnalisis/"+planID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cards := dataField(t, envelope)["cards"].(map[string]interface{})
	assert.Len(t, cards, 8)
	assert.Len(t, cards["strengths"], 1)

	rec, _ = doJSON(t, router, http.MethodPost, "/api/analysis/strengths/deleteCard/"+cardID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope = doJSON(t, router, http.MethodGet, "/api/analysis/allAnalisis/"+planID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cards = dataField(t, envelope)["cards"].(map[string]interface{})
	assert.Empty(t, cards["strengths"])
}
