package planning

import "errors"

// Domain errors surfaced to the API layer. Handlers translate these to
// status codes; everything else is treated as an internal failure.
var (
	// ErrAlreadyInvited is returned when the user already holds a pending
	// or accepted invitation for the plan.
	ErrAlreadyInvited = errors.New("user already invited to this plan")

	// ErrNoPendingInvitation is returned when responding to a plan the
	// user has no pending invitation for.
	ErrNoPendingInvitation = errors.New("no pending invitation for this plan")

	// ErrInvalidCredentials is returned on login with a wrong email or
	// password. The message is deliberately the same for both cases.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidResetToken is returned when a password reset token is
	// unknown or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")

	// ErrUnknownCategory is returned for an analysis category outside the
	// eight SWOT/CAME lists.
	ErrUnknownCategory = errors.New("unknown analysis category")
)
