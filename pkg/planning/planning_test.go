package planning_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategic-planning-backend/pkg/database"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
)

func newService(t *testing.T) (*planning.Service, database.Store) {
	t.Helper()
	store, err := database.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return planning.NewService(store), store
}

func register(t *testing.T, svc *planning.Service, name, email string) *models.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &models.UserRegisterRequest{
		Name:     name,
		Email:    email,
		Password: "password123",
	})
	require.NoError(t, err)
	return user
}

func createPlan(t *testing.T, svc *planning.Service, ownerID, name string) *models.StrategicPlan {
	t.Helper()
	plan, err := svc.CreatePlan(context.Background(), ownerID, &models.StrategicPlanRequest{
		Name:    name,
		EndDate: "2026-12-31",
	})
	require.NoError(t, err)
	return plan
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	user := register(t, svc, "ana", "ana@example.com")
	assert.True(t, models.IsObjectID(user.ID))
	assert.NotEqual(t, "password123", user.Password, "password must be hashed")

	logged, err := svc.Login(ctx, &models.UserLoginRequest{Email: "ana@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, err = svc.Login(ctx, &models.UserLoginRequest{Email: "ana@example.com", Password: "wrongpass"})
	assert.ErrorIs(t, err, planning.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.UserLoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, planning.ErrInvalidCredentials)

	_, err = svc.Register(ctx, &models.UserRegisterRequest{Name: "other", Email: "ana@example.com", Password: "password123"})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	register(t, svc, "ana", "ana@example.com")

	_, err := svc.ForgotPassword(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, database.ErrNotFound)

	token, err := svc.ForgotPassword(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: "bogus-token", Password: "newpassword1"})
	assert.ErrorIs(t, err, planning.ErrInvalidResetToken)

	require.NoError(t, svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: token, Password: "newpassword1"}))

	_, err = svc.Login(ctx, &models.UserLoginRequest{Email: "ana@example.com", Password: "newpassword1"})
	require.NoError(t, err)

	// Tokens are single use.
	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: token, Password: "anotherpass1"})
	assert.ErrorIs(t, err, planning.ErrInvalidResetToken)
}

func TestInvitationWorkflow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	invitee := register(t, svc, "invitee", "invitee@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")
	assert.Contains(t, plan.Members, owner.ID)

	invited, err := svc.Invite(ctx, &models.SendInvitationRequest{UserID: invitee.ID, PlanID: plan.ID})
	require.NoError(t, err)
	require.Len(t, invited.Invitations, 1)
	assert.Equal(t, models.InvitationPending, invited.Invitations[0].Status)

	// Pending blocks a second invitation.
	_, err = svc.Invite(ctx, &models.SendInvitationRequest{UserID: invitee.ID, PlanID: plan.ID})
	assert.ErrorIs(t, err, planning.ErrAlreadyInvited)

	accepted, err := svc.Respond(ctx, &models.ResponseInvitationRequest{UserID: invitee.ID, PlanID: plan.ID, Accepted: true})
	require.NoError(t, err)
	assert.Contains(t, accepted.StrategicPlans, plan.ID)
	assert.Equal(t, models.InvitationAccepted, accepted.Invitations[0].Status)

	got, err := svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Members, invitee.ID)

	// No pending invitation left to respond to.
	_, err = svc.Respond(ctx, &models.ResponseInvitationRequest{UserID: invitee.ID, PlanID: plan.ID, Accepted: true})
	assert.ErrorIs(t, err, planning.ErrNoPendingInvitation)

	// Accepted still blocks re-inviting.
	_, err = svc.Invite(ctx, &models.SendInvitationRequest{UserID: invitee.ID, PlanID: plan.ID})
	assert.ErrorIs(t, err, planning.ErrAlreadyInvited)
}

func TestInvitationDeclineAllowsReinvite(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	invitee := register(t, svc, "invitee", "invitee@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	_, err := svc.Invite(ctx, &models.SendInvitationRequest{UserID: invitee.ID, PlanID: plan.ID})
	require.NoError(t, err)

	declined, err := svc.Respond(ctx, &models.ResponseInvitationRequest{UserID: invitee.ID, PlanID: plan.ID, Accepted: false})
	require.NoError(t, err)
	assert.NotContains(t, declined.StrategicPlans, plan.ID)
	assert.Equal(t, models.InvitationDeclined, declined.Invitations[0].Status)

	got, err := svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Members, invitee.ID)

	// Declined entries are replaced by a fresh pending one.
	reinvited, err := svc.Invite(ctx, &models.SendInvitationRequest{UserID: invitee.ID, PlanID: plan.ID})
	require.NoError(t, err)
	require.Len(t, reinvited.Invitations, 1)
	assert.Equal(t, models.InvitationPending, reinvited.Invitations[0].Status)
}

func TestHierarchyRecounts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	objective, err := svc.CreateObjective(ctx, plan.ID, &models.ObjectiveRequest{Title: "Grow", Responsible: owner.ID})
	require.NoError(t, err)

	goal, err := svc.CreateGoal(ctx, objective.ID, &models.GoalRequest{Description: "more students"})
	require.NoError(t, err)

	objective, err = svc.GetObjective(ctx, objective.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, objective.TotalGoals)
	assert.Equal(t, 0, objective.CompletedGoals)

	activity, err := svc.CreateActivity(ctx, goal.ID, &models.ActivityRequest{Title: "open house", Responsible: owner.ID})
	require.NoError(t, err)

	goal, err = svc.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, goal.TotalActivities)
	assert.Equal(t, 0, goal.CompletedActivities, "activity without indicators is not done")

	indicator, err := svc.CreateIndicator(ctx, activity.ID, &models.IndicatorRequest{
		Description: "visitors",
		Type:        models.IndicatorNumeral,
		Actual:      intp(10),
		Total:       intp(10),
		Completed:   boolp(true),
	})
	require.NoError(t, err)

	goal, err = svc.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, goal.CompletedActivities)
	assert.True(t, goal.Completed())

	objective, err = svc.GetObjective(ctx, objective.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, objective.CompletedGoals)

	// An incomplete second indicator takes the activity back out of done.
	_, err = svc.CreateIndicator(ctx, activity.ID, &models.IndicatorRequest{
		Description: "follow-ups",
		Type:        models.IndicatorNumeral,
		Total:       intp(5),
	})
	require.NoError(t, err)

	goal, err = svc.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, goal.CompletedActivities)

	objective, err = svc.GetObjective(ctx, objective.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, objective.CompletedGoals)

	// Deleting the incomplete indicator restores progress.
	indicators, err := svc.ListIndicators(ctx, activity.ID)
	require.NoError(t, err)
	require.Len(t, indicators, 2)
	for _, in := range indicators {
		if in.ID != indicator.ID {
			require.NoError(t, svc.DeleteIndicator(ctx, in.ID))
		}
	}

	objective, err = svc.GetObjective(ctx, objective.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, objective.CompletedGoals)
}

func TestCascadeDeleteObjective(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")
	objective, err := svc.CreateObjective(ctx, plan.ID, &models.ObjectiveRequest{Title: "Grow", Responsible: owner.ID})
	require.NoError(t, err)
	goal, err := svc.CreateGoal(ctx, objective.ID, &models.GoalRequest{Description: "more students"})
	require.NoError(t, err)
	activity, err := svc.CreateActivity(ctx, goal.ID, &models.ActivityRequest{Title: "open house", Responsible: owner.ID})
	require.NoError(t, err)
	indicator, err := svc.CreateIndicator(ctx, activity.ID, &models.IndicatorRequest{
		Description: "visitors", Type: models.IndicatorNumeral,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteObjective(ctx, objective.ID))

	_, err = store.GetObjective(ctx, objective.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = store.GetGoal(ctx, goal.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = store.GetActivity(ctx, activity.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
	_, err = store.GetIndicator(ctx, indicator.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	got, err := svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Objectives)
}

func TestDeletePlanPurgesReferences(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	member := register(t, svc, "member", "member@example.com")
	pending := register(t, svc, "pending", "pending@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	_, err := svc.Invite(ctx, &models.SendInvitationRequest{UserID: member.ID, PlanID: plan.ID})
	require.NoError(t, err)
	_, err = svc.Respond(ctx, &models.ResponseInvitationRequest{UserID: member.ID, PlanID: plan.ID, Accepted: true})
	require.NoError(t, err)
	_, err = svc.Invite(ctx, &models.SendInvitationRequest{UserID: pending.ID, PlanID: plan.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePlan(ctx, plan.ID))

	for _, id := range []string{owner.ID, member.ID, pending.ID} {
		u, err := svc.GetUser(ctx, id)
		require.NoError(t, err)
		assert.NotContains(t, u.StrategicPlans, plan.ID)
		for _, inv := range u.Invitations {
			assert.NotEqual(t, plan.ID, inv.PlanID)
		}
	}
}

func TestOperationalPlanExclusivity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	first, err := svc.CreateOperationalPlan(ctx, plan.ID, &models.OperationalPlanRequest{Title: "Q1", Active: boolp(true)})
	require.NoError(t, err)
	assert.True(t, first.Active)

	second, err := svc.CreateOperationalPlan(ctx, plan.ID, &models.OperationalPlanRequest{Title: "Q2"})
	require.NoError(t, err)
	assert.False(t, second.Active)

	second, err = svc.SetActiveOperationalPlan(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, second.Active)

	first, err = svc.GetOperationalPlan(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, first.Active, "activation must deactivate siblings")

	// Creating a third active plan sweeps the rest too.
	third, err := svc.CreateOperationalPlan(ctx, plan.ID, &models.OperationalPlanRequest{Title: "Q3", Active: boolp(true)})
	require.NoError(t, err)
	assert.True(t, third.Active)
	second, err = svc.GetOperationalPlan(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)
}

func TestOperationalPlanTracking(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")
	objective, err := svc.CreateObjective(ctx, plan.ID, &models.ObjectiveRequest{Title: "Grow", Responsible: owner.ID})
	require.NoError(t, err)
	goal, err := svc.CreateGoal(ctx, objective.ID, &models.GoalRequest{Description: "more students"})
	require.NoError(t, err)
	activity, err := svc.CreateActivity(ctx, goal.ID, &models.ActivityRequest{Title: "open house", Responsible: owner.ID})
	require.NoError(t, err)
	op, err := svc.CreateOperationalPlan(ctx, plan.ID, &models.OperationalPlanRequest{Title: "Q1"})
	require.NoError(t, err)

	indicator, err := svc.CreateIndicator(ctx, activity.ID, &models.IndicatorRequest{
		Description:       "visitors",
		Type:              models.IndicatorBinary,
		OperationalPlanID: op.ID,
	})
	require.NoError(t, err)

	op, err = svc.GetOperationalPlan(ctx, op.ID)
	require.NoError(t, err)
	assert.Contains(t, op.Activities, activity.ID)
	assert.Equal(t, 1, op.TotalActivities)
	assert.Equal(t, 0, op.CompletedActivities)

	_, err = svc.UpdateIndicator(ctx, indicator.ID, &models.IndicatorRequest{
		Description:       "visitors",
		Type:              models.IndicatorBinary,
		Completed:         boolp(true),
		OperationalPlanID: op.ID,
	})
	require.NoError(t, err)

	op, err = svc.GetOperationalPlan(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, op.CompletedActivities)

	// Deleting the operational plan unassigns the indicator, leaving it intact.
	require.NoError(t, svc.DeleteOperationalPlan(ctx, op.ID))
	in, err := svc.GetIndicator(ctx, indicator.ID)
	require.NoError(t, err)
	assert.Empty(t, in.OperationalPlanID)

	got, err := svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.OperationPlans, op.ID)
}

func TestAnalysisCards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	card, err := svc.AddCard(ctx, models.CategoryStrengths, plan.ID, &models.CardAnalysisRequest{Title: "strong faculty"})
	require.NoError(t, err)
	_, err = svc.AddCard(ctx, models.CategoryAfront, plan.ID, &models.CardAnalysisRequest{Title: "new campaigns"})
	require.NoError(t, err)

	_, err = svc.AddCard(ctx, "momentum", plan.ID, &models.CardAnalysisRequest{Title: "nope"})
	assert.ErrorIs(t, err, planning.ErrUnknownCategory)

	got, err := svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Contains(t, got.Swot.Strengths, card.ID)

	analysis, err := svc.PlanAnalysis(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, analysis.Cards, len(models.AnalysisCategories), "every category present")
	assert.Len(t, analysis.Cards[models.CategoryStrengths], 1)
	assert.Len(t, analysis.Cards[models.CategoryAfront], 1)
	assert.Empty(t, analysis.Cards[models.CategoryThreats])

	require.NoError(t, svc.DeleteCard(ctx, card.ID))
	got, err = svc.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.Swot.Strengths, card.ID)
}

func TestPlanGoalsAggregation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	owner := register(t, svc, "owner", "owner@example.com")
	plan := createPlan(t, svc, owner.ID, "Plan 2026")

	first, err := svc.CreateObjective(ctx, plan.ID, &models.ObjectiveRequest{Title: "Grow", Responsible: owner.ID})
	require.NoError(t, err)
	second, err := svc.CreateObjective(ctx, plan.ID, &models.ObjectiveRequest{Title: "Retain", Responsible: owner.ID})
	require.NoError(t, err)

	_, err = svc.CreateGoal(ctx, first.ID, &models.GoalRequest{Description: "goal one"})
	require.NoError(t, err)
	_, err = svc.CreateGoal(ctx, second.ID, &models.GoalRequest{Description: "goal two"})
	require.NoError(t, err)
	_, err = svc.CreateGoal(ctx, second.ID, &models.GoalRequest{Description: "goal three"})
	require.NoError(t, err)

	goals, err := svc.ListPlanGoals(ctx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, goals, 3)
}
