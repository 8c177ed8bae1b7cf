package models

// OperationalPlan is a time-boxed execution window under a strategic plan.
// At most one operational plan is active per strategic plan; activating
// one deactivates the rest.
type OperationalPlan struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	StartDate           string    `json:"startDate,omitempty"`
	EndDate             string    `json:"endDate,omitempty"`
	Activities          []string  `json:"activitiesIds"`
	TotalActivities     int       `json:"totalActivities"`
	CompletedActivities int       `json:"completedActivities"`
	Active              bool      `json:"active"`
	PlanID              string    `json:"planId"`
	CreatedAt           string    `json:"created_at,omitempty"`
	UpdatedAt           string    `json:"updated_at,omitempty"`
}

// OperationalPlanRequest is the create/update payload for an operational plan.
type OperationalPlanRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Active    *bool  `json:"active"`
}
