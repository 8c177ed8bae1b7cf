package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field-level limits shared by the validators below. The bounds mirror
// what the frontend forms enforce; the API is the authoritative check.
const (
	MaxNameLen        = 100
	MaxRealNameLen    = 150
	MaxEmailLen       = 200
	MaxTitleLen       = 300
	MaxDescriptionLen = 2000
	MaxEvidenceLen    = 500
	MinPasswordLen    = 8

	// DateLayout is the wire and storage format for plan dates.
	DateLayout = "2006-01-02"
)

var (
	objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// IsObjectID reports whether s is a 24-character hex document id.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

// FieldError is one human-readable validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full list of failures for a payload.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "invalid payload"
	}
	return v[0].Message
}

// First returns the first failure message, which the API surfaces as the
// 400 response body.
func (v ValidationErrors) First() string {
	return v.Error()
}

// OrNil converts an empty list to a nil error.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) add(field, format string, args ...any) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationErrors) requireString(field, label, value string, max int) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "%s is required", label)
		return
	}
	v.maxLen(field, label, value, max)
}

func (v *ValidationErrors) maxLen(field, label, value string, max int) {
	if len(value) > max {
		v.add(field, "%s must be at most %d characters", label, max)
	}
}

func (v *ValidationErrors) objectID(field, label, value string) {
	if !IsObjectID(value) {
		v.add(field, "%s must be a 24-character hex id", label)
	}
}

func (v *ValidationErrors) date(field, label, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		v.add(field, "%s must be a date in %s format", label, DateLayout)
	}
}

// Validate checks a registration payload.
func (r *UserRegisterRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("name", "name", r.Name, MaxNameLen)
	v.maxLen("realName", "real name", r.RealName, MaxRealNameLen)
	if strings.TrimSpace(r.Email) == "" {
		v.add("email", "email is required")
	} else if len(r.Email) > MaxEmailLen || !emailPattern.MatchString(r.Email) {
		v.add("email", "email must be a valid address")
	}
	if len(r.Password) < MinPasswordLen {
		v.add("password", "password must be at least %d characters", MinPasswordLen)
	}
	return v
}

// Validate checks a login payload.
func (r *UserLoginRequest) Validate() ValidationErrors {
	var v ValidationErrors
	if strings.TrimSpace(r.Email) == "" {
		v.add("email", "email is required")
	}
	if r.Password == "" {
		v.add("password", "password is required")
	}
	return v
}

// Validate checks a forgot-password payload.
func (r *ForgotPasswordRequest) Validate() ValidationErrors {
	var v ValidationErrors
	if strings.TrimSpace(r.Email) == "" {
		v.add("email", "email is required")
	} else if len(r.Email) > MaxEmailLen || !emailPattern.MatchString(r.Email) {
		v.add("email", "email must be a valid address")
	}
	return v
}

// Validate checks a reset-password payload.
func (r *ResetPasswordRequest) Validate() ValidationErrors {
	var v ValidationErrors
	if strings.TrimSpace(r.Token) == "" {
		v.add("token", "token is required")
	}
	if len(r.Password) < MinPasswordLen {
		v.add("password", "password must be at least %d characters", MinPasswordLen)
	}
	return v
}

// Validate checks a plan payload. Name and end date are required; when
// both dates are present the end date may not precede the start date.
func (r *StrategicPlanRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("name", "plan name", r.Name, MaxTitleLen)
	v.maxLen("mission", "mission", r.Mission, MaxDescriptionLen)
	v.maxLen("vision", "vision", r.Vision, MaxDescriptionLen)
	v.maxLen("values", "values", r.Values, MaxDescriptionLen)
	v.date("startDate", "start date", r.StartDate)
	if strings.TrimSpace(r.EndDate) == "" {
		v.add("endDate", "end date is required")
	} else {
		v.date("endDate", "end date", r.EndDate)
	}
	if r.StartDate != "" && r.EndDate != "" {
		start, errS := time.Parse(DateLayout, r.StartDate)
		end, errE := time.Parse(DateLayout, r.EndDate)
		if errS == nil && errE == nil && end.Before(start) {
			v.add("endDate", "end date must not precede start date")
		}
	}
	return v
}

// Validate checks an objective payload.
func (r *ObjectiveRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("title", "title", r.Title, MaxTitleLen)
	v.maxLen("description", "description", r.Description, MaxDescriptionLen)
	if r.Responsible == "" {
		v.add("responsible", "responsible is required")
	} else {
		v.objectID("responsible", "responsible", r.Responsible)
	}
	return v
}

// Validate checks a goal payload and applies counter defaults. The
// completed count is bounded by the sibling total at validation time.
func (r *GoalRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("description", "description", r.Description, MaxDescriptionLen)
	total, completed := 0, 0
	if r.TotalActivities != nil {
		total = *r.TotalActivities
	}
	if r.CompletedActivities != nil {
		completed = *r.CompletedActivities
	}
	if total < 0 {
		v.add("totalActivities", "total activities must not be negative")
	}
	if completed < 0 {
		v.add("completedActivities", "completed activities must not be negative")
	} else if completed > total {
		v.add("completedActivities", "completed activities must not exceed total activities")
	}
	return v
}

// Counters returns the normalized (defaulted) counter values.
func (r *GoalRequest) Counters() (total, completed int) {
	if r.TotalActivities != nil {
		total = *r.TotalActivities
	}
	if r.CompletedActivities != nil {
		completed = *r.CompletedActivities
	}
	return total, completed
}

// Validate checks an activity payload.
func (r *ActivityRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("title", "title", r.Title, MaxTitleLen)
	v.maxLen("description", "description", r.Description, MaxDescriptionLen)
	if r.Responsible == "" {
		v.add("responsible", "responsible is required")
	} else {
		v.objectID("responsible", "responsible", r.Responsible)
	}
	return v
}

// Validate checks an indicator payload and applies defaults.
func (r *IndicatorRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("description", "description", r.Description, MaxDescriptionLen)
	if !r.Type.Valid() {
		v.add("type", "type must be one of NUMERAL, BINARY, PERCENTAGE")
	}
	actual, total := 0, 0
	if r.Actual != nil {
		actual = *r.Actual
	}
	if r.Total != nil {
		total = *r.Total
	}
	if actual < 0 {
		v.add("actual", "actual must not be negative")
	}
	if total < 0 {
		v.add("total", "total must not be negative")
	}
	if r.Type != IndicatorBinary && actual > total {
		v.add("actual", "actual must not exceed total")
	}
	v.maxLen("evidence", "evidence", r.Evidence, MaxEvidenceLen)
	if r.OperationalPlanID != "" {
		v.objectID("operationalPlanId", "operational plan id", r.OperationalPlanID)
	}
	return v
}

// Values returns the normalized (defaulted) indicator fields.
func (r *IndicatorRequest) Values() (actual, total int, completed bool) {
	if r.Actual != nil {
		actual = *r.Actual
	}
	if r.Total != nil {
		total = *r.Total
	}
	if r.Completed != nil {
		completed = *r.Completed
	}
	return actual, total, completed
}

// Validate checks an operational plan payload.
func (r *OperationalPlanRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("title", "title", r.Title, MaxTitleLen)
	v.date("startDate", "start date", r.StartDate)
	v.date("endDate", "end date", r.EndDate)
	if r.StartDate != "" && r.EndDate != "" {
		start, errS := time.Parse(DateLayout, r.StartDate)
		end, errE := time.Parse(DateLayout, r.EndDate)
		if errS == nil && errE == nil && end.Before(start) {
			v.add("endDate", "end date must not precede start date")
		}
	}
	return v
}

// Validate checks a card payload.
func (r *CardAnalysisRequest) Validate() ValidationErrors {
	var v ValidationErrors
	v.requireString("title", "title", r.Title, MaxTitleLen)
	v.maxLen("description", "description", r.Description, MaxDescriptionLen)
	return v
}

// Validate checks an invitation request.
func (r *SendInvitationRequest) Validate() ValidationErrors {
	var v ValidationErrors
	if r.UserID == "" {
		v.add("userId", "userId is required")
	} else {
		v.objectID("userId", "userId", r.UserID)
	}
	if r.PlanID == "" {
		v.add("planId", "planId is required")
	} else {
		v.objectID("planId", "planId", r.PlanID)
	}
	return v
}

// Validate checks an invitation response request.
func (r *ResponseInvitationRequest) Validate() ValidationErrors {
	var v ValidationErrors
	if r.UserID == "" {
		v.add("userId", "userId is required")
	} else {
		v.objectID("userId", "userId", r.UserID)
	}
	if r.PlanID == "" {
		v.add("planId", "planId is required")
	} else {
		v.objectID("planId", "planId", r.PlanID)
	}
	return v
}
