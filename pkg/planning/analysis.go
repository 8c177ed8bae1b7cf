package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// AddCard creates an analysis card under one of the plan's eight
// SWOT/CAME lists and links its id into that list.
func (s *Service) AddCard(ctx context.Context, category models.AnalysisCategory, planID string, req *models.CardAnalysisRequest) (*models.CardAnalysis, error) {
	if !category.Valid() {
		return nil, ErrUnknownCategory
	}
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	plan, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	card := &models.CardAnalysis{
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
		PlanID:      planID,
	}
	if err := s.store.CreateCard(ctx, card); err != nil {
		return nil, err
	}

	list := plan.CategoryList(category)
	if changed, ok := attachID(*list, card.ID); ok {
		*list = changed
		if err := s.store.UpdatePlan(ctx, plan); err != nil {
			return nil, err
		}
	}
	return card, nil
}

// DeleteCard removes a card and its reference from the plan's category
// list. The card knows its own plan and category, so no list is left
// pointing at a vanished card.
func (s *Service) DeleteCard(ctx context.Context, cardID string) error {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		return err
	}

	plan, err := s.store.GetPlan(ctx, card.PlanID)
	if err == nil {
		list := plan.CategoryList(card.Category)
		if list != nil {
			if changed, ok := detachID(*list, cardID); ok {
				*list = changed
				if err := s.store.UpdatePlan(ctx, plan); err != nil {
					return err
				}
			}
		}
	}
	slog.Info("analysis card deleted", "cardId", cardID, "planId", card.PlanID)
	return nil
}

// ListCards returns the cards of one category under the plan.
func (s *Service) ListCards(ctx context.Context, category models.AnalysisCategory, planID string) ([]models.CardAnalysis, error) {
	if !category.Valid() {
		return nil, ErrUnknownCategory
	}
	if _, err := s.store.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	cards, err := s.store.ListCardsByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	out := []models.CardAnalysis{}
	for i := range cards {
		if cards[i].Category == category {
			out = append(out, cards[i])
		}
	}
	return out, nil
}

// PlanAnalysis returns the full SWOT/CAME view of the plan with every
// category present, empty ones included.
func (s *Service) PlanAnalysis(ctx context.Context, planID string) (*models.PlanAnalysis, error) {
	if _, err := s.store.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	cards, err := s.store.ListCardsByPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	analysis := &models.PlanAnalysis{
		PlanID: planID,
		Cards:  make(map[models.AnalysisCategory][]models.CardAnalysis, len(models.AnalysisCategories)),
	}
	for _, c := range models.AnalysisCategories {
		analysis.Cards[c] = []models.CardAnalysis{}
	}
	for i := range cards {
		analysis.Cards[cards[i].Category] = append(analysis.Cards[cards[i].Category], cards[i])
	}
	return analysis, nil
}
