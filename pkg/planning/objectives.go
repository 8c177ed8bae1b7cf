package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// CreateObjective adds an objective to the plan and links it into the
// plan's objective list.
func (s *Service) CreateObjective(ctx context.Context, planID string, req *models.ObjectiveRequest) (*models.Objective, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	objective := &models.Objective{
		Title:       req.Title,
		Description: req.Description,
		Responsible: req.Responsible,
		Goals:       []string{},
		PlanID:      planID,
	}
	if err := s.store.CreateObjective(ctx, objective); err != nil {
		return nil, err
	}

	if changed, ok := attachID(plan.Objectives, objective.ID); ok {
		plan.Objectives = changed
		if err := s.store.UpdatePlan(ctx, plan); err != nil {
			return nil, err
		}
	}
	return objective, nil
}

// GetObjective loads one objective.
func (s *Service) GetObjective(ctx context.Context, id string) (*models.Objective, error) {
	return s.store.GetObjective(ctx, id)
}

// ListObjectives returns every objective under the plan.
func (s *Service) ListObjectives(ctx context.Context, planID string) ([]models.Objective, error) {
	if _, err := s.store.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.store.ListObjectivesByPlan(ctx, planID)
}

// UpdateObjective replaces the editable fields of an objective. The
// goal counters and the goal list are recount-managed and not touched.
func (s *Service) UpdateObjective(ctx context.Context, id string, req *models.ObjectiveRequest) (*models.Objective, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	objective, err := s.store.GetObjective(ctx, id)
	if err != nil {
		return nil, err
	}
	objective.Title = req.Title
	objective.Description = req.Description
	objective.Responsible = req.Responsible
	if err := s.store.UpdateObjective(ctx, objective); err != nil {
		return nil, err
	}
	return objective, nil
}

// DeleteObjective removes the objective, its whole goal tree, and the
// reference held by the parent plan.
func (s *Service) DeleteObjective(ctx context.Context, id string) error {
	objective, err := s.store.GetObjective(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deleteObjectiveTree(ctx, objective); err != nil {
		return err
	}

	plan, err := s.store.GetPlan(ctx, objective.PlanID)
	if err == nil {
		if changed, ok := detachID(plan.Objectives, id); ok {
			plan.Objectives = changed
			if err := s.store.UpdatePlan(ctx, plan); err != nil {
				return err
			}
		}
	}
	slog.Info("objective deleted", "objectiveId", id, "planId", objective.PlanID)
	return nil
}

// deleteObjectiveTree deletes the objective and every goal, activity
// and indicator underneath it. The parent plan is not touched here.
func (s *Service) deleteObjectiveTree(ctx context.Context, objective *models.Objective) error {
	goals, err := s.store.ListGoalsByObjective(ctx, objective.ID)
	if err != nil {
		return err
	}
	for i := range goals {
		if err := s.deleteGoalTree(ctx, &goals[i]); err != nil {
			return err
		}
	}
	return s.store.DeleteObjective(ctx, objective.ID)
}
