package models

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation is one entry of a user's membership workflow for a plan.
// A user holds at most one active (pending or accepted) entry per plan;
// a declined entry may be replaced by a fresh pending one.
type Invitation struct {
	PlanID string           `json:"planId"`
	Status InvitationStatus `json:"status"`
}

// Active reports whether the entry blocks a new invitation for its plan.
func (i Invitation) Active() bool {
	return i.Status == InvitationPending || i.Status == InvitationAccepted
}

// SendInvitationRequest invites a user to a strategic plan.
type SendInvitationRequest struct {
	UserID string `json:"userId"`
	PlanID string `json:"planId"`
}

// ResponseInvitationRequest resolves a pending invitation.
type ResponseInvitationRequest struct {
	UserID   string `json:"userId"`
	PlanID   string `json:"planId"`
	Accepted bool   `json:"accepted"`
}
