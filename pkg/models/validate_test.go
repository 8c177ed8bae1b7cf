package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestIsObjectID(t *testing.T) {
	assert.True(t, IsObjectID("507f1f77bcf86cd799439011"))
	assert.True(t, IsObjectID("ABCDEFabcdef012345678901"))
	assert.False(t, IsObjectID(""))
	assert.False(t, IsObjectID("507f1f77bcf86cd79943901"))    // 23 chars
	assert.False(t, IsObjectID("507f1f77bcf86cd7994390111"))  // 25 chars
	assert.False(t, IsObjectID("507f1f77bcf86cd79943901g"))   // non-hex
}

func TestUserRegisterRequestValidate(t *testing.T) {
	req := UserRegisterRequest{Name: "ana", Email: "ana@example.com", Password: "secret123"}
	require.NoError(t, req.Validate().OrNil())

	req.Email = "not-an-email"
	err := req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	req.Email = "ana@example.com"
	req.Password = "short"
	err = req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")

	req.Password = "secret123"
	req.Name = strings.Repeat("x", MaxNameLen+1)
	require.Error(t, req.Validate().OrNil())
}

func TestStrategicPlanRequestValidate(t *testing.T) {
	req := StrategicPlanRequest{Name: "Plan 2026", StartDate: "2026-01-01", EndDate: "2026-12-31"}
	require.NoError(t, req.Validate().OrNil())

	req.EndDate = ""
	err := req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date is required")

	req.EndDate = "2025-12-31"
	err = req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not precede")

	req.StartDate = "01/01/2026"
	req.EndDate = "2026-12-31"
	require.Error(t, req.Validate().OrNil())
}

func TestGoalRequestValidate(t *testing.T) {
	req := GoalRequest{Description: "raise enrollment"}
	require.NoError(t, req.Validate().OrNil())
	total, completed := req.Counters()
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, completed)

	req.TotalActivities = intp(3)
	req.CompletedActivities = intp(5)
	err := req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed")

	req.CompletedActivities = intp(-1)
	require.Error(t, req.Validate().OrNil())
}

func TestIndicatorRequestValidate(t *testing.T) {
	req := IndicatorRequest{Description: "sessions held", Type: IndicatorNumeral, Actual: intp(2), Total: intp(10)}
	require.NoError(t, req.Validate().OrNil())

	req.Type = "WEEKLY"
	err := req.Validate().OrNil()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")

	// BINARY indicators are exempt from the actual<=total bound.
	req.Type = IndicatorBinary
	req.Actual = intp(1)
	req.Total = intp(0)
	require.NoError(t, req.Validate().OrNil())

	req.Type = IndicatorPercentage
	req.Actual = intp(50)
	req.Total = intp(40)
	require.Error(t, req.Validate().OrNil())
}

func TestOperationalPlanRequestValidate(t *testing.T) {
	req := OperationalPlanRequest{Title: "Q1 execution", StartDate: "2026-01-01", EndDate: "2026-03-31"}
	require.NoError(t, req.Validate().OrNil())

	req.EndDate = "2025-03-31"
	require.Error(t, req.Validate().OrNil())

	req.Title = ""
	req.EndDate = "2026-03-31"
	require.Error(t, req.Validate().OrNil())
}

func TestGoalCompleted(t *testing.T) {
	g := Goal{TotalActivities: 0, CompletedActivities: 0}
	assert.False(t, g.Completed(), "zero activities never counts as done")

	g = Goal{TotalActivities: 2, CompletedActivities: 1}
	assert.False(t, g.Completed())

	g = Goal{TotalActivities: 2, CompletedActivities: 2}
	assert.True(t, g.Completed())
}

func TestAnalysisCategory(t *testing.T) {
	for _, c := range AnalysisCategories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, AnalysisCategory("swot").Valid())

	p := &StrategicPlan{}
	for _, c := range AnalysisCategories {
		require.NotNil(t, p.CategoryList(c), string(c))
	}
	assert.Nil(t, p.CategoryList("unknown"))
}

func TestInvitationActive(t *testing.T) {
	assert.True(t, Invitation{Status: InvitationPending}.Active())
	assert.True(t, Invitation{Status: InvitationAccepted}.Active())
	assert.False(t, Invitation{Status: InvitationDeclined}.Active())
}
