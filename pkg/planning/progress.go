package planning

import (
	"context"

	"strategic-planning-backend/pkg/models"
)

// The denormalized counters on objectives, goals and operational plans
// are recomputed here after every structural change underneath them.
// Recounts read the actual child documents, so a counter can never
// drift past what the children support.

// activityCompleted reports whether every indicator of the activity is
// completed. An activity with no indicators does not count as done.
func activityCompleted(indicators []models.Indicator) bool {
	if len(indicators) == 0 {
		return false
	}
	for i := range indicators {
		if !indicators[i].Completed {
			return false
		}
	}
	return true
}

// recountGoal rebuilds the goal's activity counters from its attached
// activities and their indicators, then cascades to the objective.
func (s *Service) recountGoal(ctx context.Context, goalID string) error {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return err
	}

	activities, err := s.store.ListActivitiesByGoal(ctx, goalID)
	if err != nil {
		return err
	}
	completed := 0
	for i := range activities {
		indicators, err := s.store.ListIndicatorsByActivity(ctx, activities[i].ID)
		if err != nil {
			return err
		}
		if activityCompleted(indicators) {
			completed++
		}
	}

	goal.TotalActivities = len(activities)
	goal.CompletedActivities = completed
	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return err
	}
	return s.recountObjective(ctx, goal.ObjectiveID)
}

// recountObjective rebuilds the objective's goal counters from the
// goals that point at it.
func (s *Service) recountObjective(ctx context.Context, objectiveID string) error {
	objective, err := s.store.GetObjective(ctx, objectiveID)
	if err != nil {
		return err
	}
	goals, err := s.store.ListGoalsByObjective(ctx, objectiveID)
	if err != nil {
		return err
	}

	completed := 0
	for i := range goals {
		if goals[i].Completed() {
			completed++
		}
	}
	objective.TotalGoals = len(goals)
	objective.CompletedGoals = completed
	return s.store.UpdateObjective(ctx, objective)
}

// recountOperationalPlan rebuilds the plan's activity list and counters
// from the indicators assigned to it. An activity belongs to the plan
// while at least one of its indicators does, and counts as completed
// when all of those indicators are completed.
func (s *Service) recountOperationalPlan(ctx context.Context, opPlanID string) error {
	op, err := s.store.GetOperationalPlan(ctx, opPlanID)
	if err != nil {
		return err
	}
	indicators, err := s.store.ListIndicatorsByOperationalPlan(ctx, opPlanID)
	if err != nil {
		return err
	}

	byActivity := make(map[string][]models.Indicator)
	order := []string{}
	for _, in := range indicators {
		if _, seen := byActivity[in.ActivityID]; !seen {
			order = append(order, in.ActivityID)
		}
		byActivity[in.ActivityID] = append(byActivity[in.ActivityID], in)
	}

	completed := 0
	for _, activityID := range order {
		if activityCompleted(byActivity[activityID]) {
			completed++
		}
	}
	op.Activities = order
	op.TotalActivities = len(order)
	op.CompletedActivities = completed
	return s.store.UpdateOperationalPlan(ctx, op)
}
