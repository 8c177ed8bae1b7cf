package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strategic-planning-backend/pkg/models"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalStoreUserCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	user := &models.User{Name: "ana", Email: "ana@example.com", Password: "hash"}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NotEmpty(t, user.ID)
	assert.True(t, models.IsObjectID(user.ID))
	assert.NotEmpty(t, user.CreatedAt)

	got, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", got.Name)
	assert.Equal(t, "hash", got.Password, "credentials must survive the round trip")

	byEmail, err := store.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	got.RealName = "Ana Pérez"
	require.NoError(t, store.UpdateUser(ctx, got))
	again, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", again.RealName)

	_, err = store.GetUserByID(ctx, "000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "ana", Email: "ana@example.com"}))

	err := store.CreateUser(ctx, &models.User{Name: "other", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = store.CreateUser(ctx, &models.User{Name: "ana", Email: "ana2@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestLocalStorePlanMembership(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	plan := &models.StrategicPlan{Name: "Plan A", EndDate: "2026-12-31", Members: []string{"507f1f77bcf86cd799439011"}}
	require.NoError(t, store.CreatePlan(ctx, plan))
	other := &models.StrategicPlan{Name: "Plan B", EndDate: "2026-12-31", Members: []string{"507f1f77bcf86cd799439022"}}
	require.NoError(t, store.CreatePlan(ctx, other))

	mine, err := store.ListPlansByMember(ctx, "507f1f77bcf86cd799439011")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, plan.ID, mine[0].ID)

	none, err := store.ListPlansByMember(ctx, "507f1f77bcf86cd799439033")
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, store.DeletePlan(ctx, plan.ID))
	_, err = store.GetPlan(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.DeletePlan(ctx, plan.ID), ErrNotFound)
}

func TestLocalStoreIndicatorQueries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := &models.Indicator{Description: "one", ActivityID: "a1", OperationalPlanID: "op1"}
	b := &models.Indicator{Description: "two", ActivityID: "a1"}
	c := &models.Indicator{Description: "three", ActivityID: "a2", OperationalPlanID: "op1"}
	for _, in := range []*models.Indicator{a, b, c} {
		require.NoError(t, store.CreateIndicator(ctx, in))
	}

	byActivity, err := store.ListIndicatorsByActivity(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, byActivity, 2)

	byOp, err := store.ListIndicatorsByOperationalPlan(ctx, "op1")
	require.NoError(t, err)
	assert.Len(t, byOp, 2)

	require.NoError(t, store.DeleteIndicator(ctx, a.ID))
	byOp, err = store.ListIndicatorsByOperationalPlan(ctx, "op1")
	require.NoError(t, err)
	assert.Len(t, byOp, 1)
}

func TestLocalStoreHealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
	assert.NoError(t, store.Close())
}
