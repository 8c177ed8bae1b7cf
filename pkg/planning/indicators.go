package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreateIndicator adds an indicator under the activity, optionally
// assigning it to an operational plan, and refreshes the counters of
// everything the indicator feeds into.
func (s *Service) CreateIndicator(ctx context.Context, activityID string, req *models.IndicatorRequest) (*models.Indicator, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	activity, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if req.OperationalPlanID != "" {
		if _, err := s.store.GetOperationalPlan(ctx, req.OperationalPlanID); err != nil {
			return nil, err
		}
	}

	actual, total, completed := req.Values()
	indicator := &models.Indicator{
		Description:       req.Description,
		Type:              req.Type,
		Actual:            actual,
		Total:             total,
		Evidence:          req.Evidence,
		Completed:         completed,
		ActivityID:        activityID,
		OperationalPlanID: req.OperationalPlanID,
	}
	if err := s.store.CreateIndicator(ctx, indicator); err != nil {
		return nil, err
	}

	if changed, ok := attachID(activity.Indicators, indicator.ID); ok {
		activity.Indicators = changed
		if err := s.store.UpdateActivity(ctx, activity); err != nil {
			return nil, err
		}
	}
	if err := s.recountGoal(ctx, activity.GoalID); err != nil {
		return nil, err
	}
	if indicator.OperationalPlanID != "" {
		if err := s.recountOperationalPlan(ctx, indicator.OperationalPlanID); err != nil {
			return nil, err
		}
	}
	return indicator, nil
}

// GetIndicator loads one indicator.
func (s *Service) GetIndicator(ctx context.Context, id string) (*models.Indicator, error) {
	return s.store.GetIndicator(ctx, id)
}

// ListIndicators returns every indicator under the activity.
func (s *Service) ListIndicators(ctx context.Context, activityID string) ([]models.Indicator, error) {
	if _, err := s.store.GetActivity(ctx, activityID); err != nil {
		return nil, err
	}
	return s.store.ListIndicatorsByActivity(ctx, activityID)
}

// UpdateIndicator replaces the indicator's fields and refreshes the
// goal, objective and operational plan counters. Moving an indicator
// between operational plans refreshes both sides.
func (s *Service) UpdateIndicator(ctx context.Context, id string, req *models.IndicatorRequest) (*models.Indicator, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	indicator, err := s.store.GetIndicator(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.OperationalPlanID != "" && req.OperationalPlanID != indicator.OperationalPlanID {
		if _, err := s.store.GetOperationalPlan(ctx, req.OperationalPlanID); err != nil {
			return nil, err
		}
	}

	previousOp := indicator.OperationalPlanID
	actual, total, completed := req.Values()
	indicator.Description = req.Description
	indicator.Type = req.Type
	indicator.Actual = actual
	indicator.Total = total
	indicator.Evidence = req.Evidence
	indicator.Completed = completed
	indicator.OperationalPlanID = req.OperationalPlanID
	if err := s.store.UpdateIndicator(ctx, indicator); err != nil {
		return nil, err
	}

	if activity, err := s.store.GetActivity(ctx, indicator.ActivityID); err == nil {
		if err := s.recountGoal(ctx, activity.GoalID); err != nil {
			return nil, err
		}
	}
	for _, opID := range []string{previousOp, indicator.OperationalPlanID} {
		if opID == "" {
			continue
		}
		if err := s.recountOperationalPlan(ctx, opID); err != nil {
			return nil, err
		}
	}
	return indicator, nil
}

// DeleteIndicator removes the indicator, updates the parent activity's
// list, and refreshes every affected counter.
func (s *Service) DeleteIndicator(ctx context.Context, id string) error {
	indicator, err := s.store.GetIndicator(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteIndicator(ctx, id); err != nil {
		return err
	}

	activity, err := s.store.GetActivity(ctx, indicator.ActivityID)
	if err == nil {
		if changed, ok := detachID(activity.Indicators, id); ok {
			activity.Indicators = changed
			if err := s.store.UpdateActivity(ctx, activity); err != nil {
				return err
			}
		}
		if err := s.recountGoal(ctx, activity.GoalID); err != nil {
			return err
		}
	}
	if indicator.OperationalPlanID != "" {
		if err := s.recountOperationalPlan(ctx, indicator.OperationalPlanID); err != nil {
			return err
		}
	}
	slog.Info("indicator deleted", "indicatorId", id, "activityId", indicator.ActivityID)
	return nil
}
