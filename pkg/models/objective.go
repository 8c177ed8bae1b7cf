package models

// Objective is one strategic objective under a plan. It carries the
// denormalized goal counters the dashboards read; recounts keep
// 0 <= CompletedGoals <= TotalGoals after every structural change.
type Objective struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Responsible    string    `json:"responsible"`
	TotalGoals     int       `json:"totalGoals"`
	CompletedGoals int       `json:"completedGoals"`
	Goals          []string  `json:"goals_ListIDS"`
	PlanID         string    `json:"planId"`
	CreatedAt      string    `json:"created_at,omitempty"`
	UpdatedAt      string    `json:"updated_at,omitempty"`
}

// Goal is one measurable goal under an objective.
type Goal struct {
	ID                  string    `json:"id"`
	Description         string    `json:"description"`
	TotalActivities     int       `json:"totalActivities"`
	CompletedActivities int       `json:"completedActivities"`
	Activities          []string  `json:"Activity_ListIDS"`
	ObjectiveID         string    `json:"objectiveId"`
	CreatedAt           string    `json:"created_at,omitempty"`
	UpdatedAt           string    `json:"updated_at,omitempty"`
}

// Completed reports whether the goal counts as done for objective recounts.
func (g *Goal) Completed() bool {
	return g.TotalActivities > 0 && g.CompletedActivities >= g.TotalActivities
}

// ObjectiveRequest is the create/update payload for an objective.
type ObjectiveRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Responsible string `json:"responsible"`
}

// GoalRequest is the create/update payload for a goal. The counters are
// optional and default to zero; when both are present the completed count
// may not exceed the total.
type GoalRequest struct {
	Description         string `json:"description"`
	TotalActivities     *int   `json:"totalActivities"`
	CompletedActivities *int   `json:"completedActivities"`
}
