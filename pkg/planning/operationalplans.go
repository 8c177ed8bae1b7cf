package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreateOperationalPlan adds an operational plan under the strategic
// plan. When the payload asks for it to start active, every sibling is
// deactivated first so at most one stays active per strategic plan.
func (s *Service) CreateOperationalPlan(ctx context.Context, planID string, req *models.OperationalPlanRequest) (*models.OperationalPlan, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	active := req.Active != nil && *req.Active
	op := &models.OperationalPlan{
		Title:      req.Title,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Activities: []string{},
		Active:     active,
		PlanID:     planID,
	}
	if active {
		if err := s.deactivateSiblings(ctx, planID, ""); err != nil {
			return nil, err
		}
	}
	if err := s.store.CreateOperationalPlan(ctx, op); err != nil {
		return nil, err
	}

	if changed, ok := attachID(plan.OperationPlans, op.ID); ok {
		plan.OperationPlans = changed
		if err := s.store.UpdatePlan(ctx, plan); err != nil {
			return nil, err
		}
	}
	return op, nil
}

// GetOperationalPlan loads one operational plan.
func (s *Service) GetOperationalPlan(ctx context.Context, id string) (*models.OperationalPlan, error) {
	return s.store.GetOperationalPlan(ctx, id)
}

// ListOperationalPlans returns every operational plan under the
// strategic plan.
func (s *Service) ListOperationalPlans(ctx context.Context, planID string) ([]models.OperationalPlan, error) {
	if _, err := s.store.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.store.ListOperationalPlansByPlan(ctx, planID)
}

// UpdateOperationalPlan replaces the editable fields. Turning the plan
// active deactivates its siblings; the activity list and counters are
// recount-managed and not touched.
func (s *Service) UpdateOperationalPlan(ctx context.Context, id string, req *models.OperationalPlanRequest) (*models.OperationalPlan, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	op, err := s.store.GetOperationalPlan(ctx, id)
	if err != nil {
		return nil, err
	}

	op.Title = req.Title
	op.StartDate = req.StartDate
	op.EndDate = req.EndDate
	if req.Active != nil {
		if *req.Active && !op.Active {
			if err := s.deactivateSiblings(ctx, op.PlanID, op.ID); err != nil {
				return nil, err
			}
		}
		op.Active = *req.Active
	}
	if err := s.store.UpdateOperationalPlan(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

// SetActiveOperationalPlan marks the plan active and deactivates every
// sibling under the same strategic plan. Activating an already active
// plan is a no-op beyond the sibling sweep.
func (s *Service) SetActiveOperationalPlan(ctx context.Context, id string) (*models.OperationalPlan, error) {
	op, err := s.store.GetOperationalPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.deactivateSiblings(ctx, op.PlanID, op.ID); err != nil {
		return nil, err
	}
	if !op.Active {
		op.Active = true
		if err := s.store.UpdateOperationalPlan(ctx, op); err != nil {
			return nil, err
		}
	}
	slog.Info("operational plan activated", "opPlanId", op.ID, "planId", op.PlanID)
	return op, nil
}

// DeleteOperationalPlan removes the plan, detaches it from the parent
// strategic plan, and unassigns every indicator that pointed at it. The
// indicators themselves survive; only the assignment is cleared.
func (s *Service) DeleteOperationalPlan(ctx context.Context, id string) error {
	op, err := s.store.GetOperationalPlan(ctx, id)
	if err != nil {
		return err
	}

	indicators, err := s.store.ListIndicatorsByOperationalPlan(ctx, id)
	if err != nil {
		return err
	}
	for i := range indicators {
		indicators[i].OperationalPlanID = ""
		if err := s.store.UpdateIndicator(ctx, &indicators[i]); err != nil {
			return err
		}
	}

	if err := s.store.DeleteOperationalPlan(ctx, id); err != nil {
		return err
	}

	plan, err := s.store.GetPlan(ctx, op.PlanID)
	if err == nil {
		if changed, ok := detachID(plan.OperationPlans, id); ok {
			plan.OperationPlans = changed
			if err := s.store.UpdatePlan(ctx, plan); err != nil {
				return err
			}
		}
	}
	slog.Info("operational plan deleted", "opPlanId", id, "planId", op.PlanID)
	return nil
}

// deactivateSiblings clears the active flag on every operational plan
// of the strategic plan except keepID.
func (s *Service) deactivateSiblings(ctx context.Context, planID, keepID string) error {
	siblings, err := s.store.ListOperationalPlansByPlan(ctx, planID)
	if err != nil {
		return err
	}
	for i := range siblings {
		sib := &siblings[i]
		if sib.ID == keepID || !sib.Active {
			continue
		}
		sib.Active = false
		if err := s.store.UpdateOperationalPlan(ctx, sib); err != nil {
			return err
		}
	}
	return nil
}
