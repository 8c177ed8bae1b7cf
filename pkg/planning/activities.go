package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreateActivity adds an activity under the goal and refreshes the goal
// and objective counters. A fresh activity has no indicators, so it
// raises the goal's total without counting as completed.
func (s *Service) CreateActivity(ctx context.Context, goalID string, req *models.ActivityRequest) (*models.Activity, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		Title:       req.Title,
		Description: req.Description,
		Responsible: req.Responsible,
		Indicators:  []string{},
		GoalID:      goalID,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}

	if changed, ok := attachID(goal.Activities, activity.ID); ok {
		goal.Activities = changed
		if err := s.store.UpdateGoal(ctx, goal); err != nil {
			return nil, err
		}
	}
	if err := s.recountGoal(ctx, goalID); err != nil {
		return nil, err
	}
	return activity, nil
}

// GetActivity loads one activity.
func (s *Service) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	return s.store.GetActivity(ctx, id)
}

// ListActivities returns every activity under the goal.
func (s *Service) ListActivities(ctx context.Context, goalID string) ([]models.Activity, error) {
	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		return nil, err
	}
	return s.store.ListActivitiesByGoal(ctx, goalID)
}

// UpdateActivity replaces the editable fields of an activity.
func (s *Service) UpdateActivity(ctx context.Context, id string, req *models.ActivityRequest) (*models.Activity, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	activity, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	activity.Title = req.Title
	activity.Description = req.Description
	activity.Responsible = req.Responsible
	if err := s.store.UpdateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// DeleteActivity removes the activity with its indicators, updates the
// parent goal's list and counters, and refreshes any operational plan
// that tracked the activity through those indicators.
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	activity, err := s.store.GetActivity(ctx, id)
	if err != nil {
		return err
	}

	opIDs, err := s.deleteActivityIndicators(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteActivity(ctx, id); err != nil {
		return err
	}

	goal, err := s.store.GetGoal(ctx, activity.GoalID)
	if err == nil {
		if changed, ok := detachID(goal.Activities, id); ok {
			goal.Activities = changed
			if err := s.store.UpdateGoal(ctx, goal); err != nil {
				return err
			}
		}
		if err := s.recountGoal(ctx, goal.ID); err != nil {
			return err
		}
	}
	for _, opID := range opIDs {
		if err := s.recountOperationalPlan(ctx, opID); err != nil {
			return err
		}
	}
	slog.Info("activity deleted", "activityId", id, "goalId", activity.GoalID)
	return nil
}
