package models

// Activity is one unit of work under a goal, tracked by its indicators.
type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Responsible string    `json:"responsible"`
	Indicators  []string  `json:"indicators_ListIDS"`
	GoalID      string    `json:"goalId"`
	CreatedAt   string    `json:"created_at,omitempty"`
	UpdatedAt   string    `json:"updated_at,omitempty"`
}

type IndicatorType string

const (
	IndicatorNumeral    IndicatorType = "NUMERAL"
	IndicatorBinary     IndicatorType = "BINARY"
	IndicatorPercentage IndicatorType = "PERCENTAGE"
)

// Valid reports whether t is a known indicator type.
func (t IndicatorType) Valid() bool {
	return t == IndicatorNumeral || t == IndicatorBinary || t == IndicatorPercentage
}

// Indicator measures progress of one activity inside one operational plan.
type Indicator struct {
	ID                string        `json:"id"`
	Description       string        `json:"description"`
	Type              IndicatorType `json:"type"`
	Actual            int           `json:"actual"`
	Total             int           `json:"total"`
	Evidence          string        `json:"evidence,omitempty"`
	Completed         bool          `json:"completed"`
	ActivityID        string        `json:"activityId"`
	OperationalPlanID string        `json:"operationalPlanId,omitempty"`
	CreatedAt         string        `json:"created_at,omitempty"`
	UpdatedAt         string        `json:"updated_at,omitempty"`
}

// ActivityRequest is the create/update payload for an activity.
type ActivityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Responsible string `json:"responsible"`
}

// IndicatorRequest is the create/update payload for an indicator. Actual
// and Total default to zero when omitted.
type IndicatorRequest struct {
	Description       string        `json:"description"`
	Type              IndicatorType `json:"type"`
	Actual            *int          `json:"actual"`
	Total             *int          `json:"total"`
	Evidence          string        `json:"evidence"`
	Completed         *bool         `json:"completed"`
	OperationalPlanID string        `json:"operationalPlanId"`
}
