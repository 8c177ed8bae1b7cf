package models

// StrategicPlan is the top-level container for a planning cycle.
// Child ownership is by reference: the plan holds lists of ids and the
// children live in their own collections.
type StrategicPlan struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Mission        string    `json:"mission,omitempty"`
	Vision         string    `json:"vision,omitempty"`
	Values         string    `json:"values,omitempty"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate"`
	Members        []string  `json:"members_ListIDS"`
	Objectives     []string  `json:"objective_ListIDS"`
	OperationPlans []string  `json:"operationPlan_ListIDS"`
	Swot           Swot      `json:"swot"`
	Came           Came      `json:"came"`
	CreatedAt      string    `json:"created_at,omitempty"`
	UpdatedAt      string    `json:"updated_at,omitempty"`
}

// Swot holds the four qualitative analysis card lists (ids of CardAnalysis).
type Swot struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Came holds the four response analysis card lists, paired with the SWOT.
type Came struct {
	Correct  []string `json:"correct"`
	Afront   []string `json:"afront"`
	Maintain []string `json:"maintain"`
	Explore  []string `json:"explore"`
}

// HasMember reports whether the user id is already in the member list.
func (p *StrategicPlan) HasMember(userID string) bool {
	for _, id := range p.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// AnalysisCategory names one of the eight SWOT/CAME card lists.
type AnalysisCategory string

const (
	CategoryStrengths     AnalysisCategory = "strengths"
	CategoryWeaknesses    AnalysisCategory = "weaknesses"
	CategoryOpportunities AnalysisCategory = "opportunities"
	CategoryThreats       AnalysisCategory = "threats"
	CategoryCorrect       AnalysisCategory = "correct"
	CategoryAfront        AnalysisCategory = "afront"
	CategoryMaintain      AnalysisCategory = "maintain"
	CategoryExplore       AnalysisCategory = "explore"
)

// AnalysisCategories lists every valid category, SWOT first.
var AnalysisCategories = []AnalysisCategory{
	CategoryStrengths, CategoryWeaknesses, CategoryOpportunities, CategoryThreats,
	CategoryCorrect, CategoryAfront, CategoryMaintain, CategoryExplore,
}

// Valid reports whether c is one of the eight known categories.
func (c AnalysisCategory) Valid() bool {
	for _, known := range AnalysisCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CategoryList returns a pointer to the plan's card list for the category.
func (p *StrategicPlan) CategoryList(c AnalysisCategory) *[]string {
	switch c {
	case CategoryStrengths:
		return &p.Swot.Strengths
	case CategoryWeaknesses:
		return &p.Swot.Weaknesses
	case CategoryOpportunities:
		return &p.Swot.Opportunities
	case CategoryThreats:
		return &p.Swot.Threats
	case CategoryCorrect:
		return &p.Came.Correct
	case CategoryAfront:
		return &p.Came.Afront
	case CategoryMaintain:
		return &p.Came.Maintain
	case CategoryExplore:
		return &p.Came.Explore
	}
	return nil
}

// CardAnalysis is a titled note attached to one SWOT/CAME category.
// The card keeps its plan id and category so deletes never leave the
// parent list pointing at a vanished card.
type CardAnalysis struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Category    AnalysisCategory `json:"category"`
	PlanID      string           `json:"planId"`
	CreatedAt   string           `json:"created_at,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

// StrategicPlanRequest is the create/update payload for a plan.
type StrategicPlanRequest struct {
	Name      string `json:"name"`
	Mission   string `json:"mission"`
	Vision    string `json:"vision"`
	Values    string `json:"values"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CardAnalysisRequest is the payload for adding a card to a category.
type CardAnalysisRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PlanAnalysis is the combined SWOT/CAME view returned by the API,
// with card ids resolved to full cards per category.
type PlanAnalysis struct {
	PlanID string                              `json:"planId"`
	Cards  map[AnalysisCategory][]CardAnalysis `json:"cards"`
}
