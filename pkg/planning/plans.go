package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreatePlan stores a new strategic plan owned by ownerID. The owner
// becomes the first member and the plan id is added to their plan list.
func (s *Service) CreatePlan(ctx context.Context, ownerID string, req *models.StrategicPlanRequest) (*models.StrategicPlan, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	owner, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	plan := &models.StrategicPlan{
		Name:           req.Name,
		Mission:        req.Mission,
		Vision:         req.Vision,
		Values:         req.Values,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Members:        []string{ownerID},
		Objectives:     []string{},
		OperationPlans: []string{},
		Swot: models.Swot{
			Strengths: []string{}, Weaknesses: []string{},
			Opportunities: []string{}, Threats: []string{},
		},
		Came: models.Came{
			Correct: []string{}, Afront: []string{},
			Maintain: []string{}, Explore: []string{},
		},
	}
	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	if changed, ok := attachID(owner.StrategicPlans, plan.ID); ok {
		owner.StrategicPlans = changed
		if err := s.store.UpdateUser(ctx, owner); err != nil {
			return nil, err
		}
	}

	slog.Info("strategic plan created", "planId", plan.ID, "ownerId", ownerID)
	return plan, nil
}

// GetPlan loads one strategic plan.
func (s *Service) GetPlan(ctx context.Context, id string) (*models.StrategicPlan, error) {
	return s.store.GetPlan(ctx, id)
}

// ListPlansForUser returns every plan the user is a member of.
func (s *Service) ListPlansForUser(ctx context.Context, userID string) ([]models.StrategicPlan, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListPlansByMember(ctx, userID)
}

// UpdatePlan replaces the editable fields of a plan. Membership, child
// lists and analyses are managed by their own operations and survive
// the update untouched.
func (s *Service) UpdatePlan(ctx context.Context, id string, req *models.StrategicPlanRequest) (*models.StrategicPlan, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	plan, err := s.store.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	plan.Name = req.Name
	plan.Mission = req.Mission
	plan.Vision = req.Vision
	plan.Values = req.Values
	plan.StartDate = req.StartDate
	plan.EndDate = req.EndDate
	if err := s.store.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan and everything under it: objectives with
// their goal/activity/indicator trees, operational plans, analysis
// cards, and every membership or invitation reference held by users.
func (s *Service) DeletePlan(ctx context.Context, id string) error {
	plan, err := s.store.GetPlan(ctx, id)
	if err != nil {
		return err
	}

	objectives, err := s.store.ListObjectivesByPlan(ctx, id)
	if err != nil {
		return err
	}
	for i := range objectives {
		if err := s.deleteObjectiveTree(ctx, &objectives[i]); err != nil {
			return err
		}
	}

	opPlans, err := s.store.ListOperationalPlansByPlan(ctx, id)
	if err != nil {
		return err
	}
	for i := range opPlans {
		if err := s.store.DeleteOperationalPlan(ctx, opPlans[i].ID); err != nil {
			return err
		}
	}

	cards, err := s.store.ListCardsByPlan(ctx, id)
	if err != nil {
		return err
	}
	for i := range cards {
		if err := s.store.DeleteCard(ctx, cards[i].ID); err != nil {
			return err
		}
	}

	if err := s.detachPlanFromUsers(ctx, id); err != nil {
		return err
	}

	if err := s.store.DeletePlan(ctx, id); err != nil {
		return err
	}
	slog.Info("strategic plan deleted", "planId", id, "name", plan.Name)
	return nil
}

// detachPlanFromUsers drops the plan id from every user's plan list and
// removes any invitation pointing at it, so no account keeps a dangling
// reference after the plan is gone.
func (s *Service) detachPlanFromUsers(ctx context.Context, planID string) error {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		u := &users[i]
		plans, planChanged := detachID(u.StrategicPlans, planID)

		inviteChanged := false
		kept := u.Invitations[:0]
		for _, inv := range u.Invitations {
			if inv.PlanID == planID {
				inviteChanged = true
				continue
			}
			kept = append(kept, inv)
		}
		if !planChanged && !inviteChanged {
			continue
		}
		u.StrategicPlans = plans
		u.Invitations = kept
		if err := s.store.UpdateUser(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
