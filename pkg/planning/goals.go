package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreateGoal adds a goal under the objective and refreshes the
// objective's goal counters. The optional counters in the payload seed
// the goal's progress until activities are attached.
func (s *Service) CreateGoal(ctx context.Context, objectiveID string, req *models.GoalRequest) (*models.Goal, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	objective, err := s.store.GetObjective(ctx, objectiveID)
	if err != nil {
		return nil, err
	}

	total, completed := req.Counters()
	goal := &models.Goal{
		Description:         req.Description,
		TotalActivities:     total,
		CompletedActivities: completed,
		Activities:          []string{},
		ObjectiveID:         objectiveID,
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}

	if changed, ok := attachID(objective.Goals, goal.ID); ok {
		objective.Goals = changed
		if err := s.store.UpdateObjective(ctx, objective); err != nil {
			return nil, err
		}
	}
	if err := s.recountObjective(ctx, objectiveID); err != nil {
		return nil, err
	}
	return goal, nil
}

// GetGoal loads one goal.
func (s *Service) GetGoal(ctx context.Context, id string) (*models.Goal, error) {
	return s.store.GetGoal(ctx, id)
}

// ListGoals returns every goal under the objective.
func (s *Service) ListGoals(ctx context.Context, objectiveID string) ([]models.Goal, error) {
	if _, err := s.store.GetObjective(ctx, objectiveID); err != nil {
		return nil, err
	}
	return s.store.ListGoalsByObjective(ctx, objectiveID)
}

// ListPlanGoals aggregates the goals of every objective under the plan.
func (s *Service) ListPlanGoals(ctx context.Context, planID string) ([]models.Goal, error) {
	if _, err := s.store.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	objectives, err := s.store.ListObjectivesByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	goals := []models.Goal{}
	for i := range objectives {
		part, err := s.store.ListGoalsByObjective(ctx, objectives[i].ID)
		if err != nil {
			return nil, err
		}
		goals = append(goals, part...)
	}
	return goals, nil
}

// UpdateGoal replaces the goal's description and manual counters, then
// refreshes the objective counters. When the goal has attached
// activities the next structural change re-derives its counters.
func (s *Service) UpdateGoal(ctx context.Context, id string, req *models.GoalRequest) (*models.Goal, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	goal, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	goal.Description = req.Description
	if req.TotalActivities != nil || req.CompletedActivities != nil {
		goal.TotalActivities, goal.CompletedActivities = req.Counters()
	}
	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, err
	}
	if err := s.recountObjective(ctx, goal.ObjectiveID); err != nil {
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes the goal with its activity tree and updates the
// parent objective's list and counters.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	goal, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deleteGoalTree(ctx, goal); err != nil {
		return err
	}

	objective, err := s.store.GetObjective(ctx, goal.ObjectiveID)
	if err == nil {
		if changed, ok := detachID(objective.Goals, id); ok {
			objective.Goals = changed
			if err := s.store.UpdateObjective(ctx, objective); err != nil {
				return err
			}
		}
		if err := s.recountObjective(ctx, objective.ID); err != nil {
			return err
		}
	}
	slog.Info("goal deleted", "goalId", id, "objectiveId", goal.ObjectiveID)
	return nil
}

// deleteGoalTree deletes the goal, its activities and their indicators,
// and refreshes any operational plan those indicators belonged to. The
// parent objective is not touched here.
func (s *Service) deleteGoalTree(ctx context.Context, goal *models.Goal) error {
	activities, err := s.store.ListActivitiesByGoal(ctx, goal.ID)
	if err != nil {
		return err
	}
	affected := map[string]bool{}
	for i := range activities {
		opIDs, err := s.deleteActivityIndicators(ctx, activities[i].ID)
		if err != nil {
			return err
		}
		for _, opID := range opIDs {
			affected[opID] = true
		}
		if err := s.store.DeleteActivity(ctx, activities[i].ID); err != nil {
			return err
		}
	}
	if err := s.store.DeleteGoal(ctx, goal.ID); err != nil {
		return err
	}
	for opID := range affected {
		if err := s.recountOperationalPlan(ctx, opID); err != nil {
			return err
		}
	}
	return nil
}

// deleteActivityIndicators deletes every indicator of the activity and
// returns the ids of the operational plans they were assigned to.
func (s *Service) deleteActivityIndicators(ctx context.Context, activityID string) ([]string, error) {
	indicators, err := s.store.ListIndicatorsByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	opIDs := []string{}
	for i := range indicators {
		if err := s.store.DeleteIndicator(ctx, indicators[i].ID); err != nil {
			return nil, err
		}
		if opID := indicators[i].OperationalPlanID; opID != "" {
			opIDs, _ = attachID(opIDs, opID)
		}
	}
	return opIDs, nil
}
