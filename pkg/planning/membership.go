package planning

import (
	"context"
	"log/slog"

	"strategic-planning-backend/pkg/models"
)

// Invite records a pending invitation on the target user. Both the user
// and the plan must exist. A pending or accepted entry for the same plan
// blocks the invite; a declined entry is replaced by a fresh pending one.
func (s *Service) Invite(ctx context.Context, req *models.SendInvitationRequest) (*models.User, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetPlan(ctx, req.PlanID); err != nil {
		return nil, err
	}

	if inv, ok := user.InvitationFor(req.PlanID); ok {
		if inv.Active() {
			return nil, ErrAlreadyInvited
		}
		inv.Status = models.InvitationPending
	} else {
		user.Invitations = append(user.Invitations, models.Invitation{
			PlanID: req.PlanID,
			Status: models.InvitationPending,
		})
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("invitation sent", "userId", user.ID, "planId", req.PlanID)
	return user, nil
}

// Respond resolves a pending invitation. Accepting makes the user a
// member: the plan id joins their plan list and their id joins the
// plan's member list, both idempotently. Declining only flips the
// invitation status. The user document is saved before the plan so a
// failure between the two writes never leaves a member without the
// matching invitation record.
func (s *Service) Respond(ctx context.Context, req *models.ResponseInvitationRequest) (*models.User, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	plan, err := s.store.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	inv, ok := user.InvitationFor(req.PlanID)
	if !ok || inv.Status != models.InvitationPending {
		return nil, ErrNoPendingInvitation
	}

	if !req.Accepted {
		inv.Status = models.InvitationDeclined
		if err := s.store.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		slog.Info("invitation declined", "userId", user.ID, "planId", plan.ID)
		return user, nil
	}

	inv.Status = models.InvitationAccepted
	if changed, ok := attachID(user.StrategicPlans, plan.ID); ok {
		user.StrategicPlans = changed
	}
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if changed, ok := attachID(plan.Members, user.ID); ok {
		plan.Members = changed
		if err := s.store.UpdatePlan(ctx, plan); err != nil {
			return nil, err
		}
	}
	slog.Info("invitation accepted", "userId", user.ID, "planId", plan.ID)
	return user, nil
}

// Invitations returns the user's invitation entries.
func (s *Service) Invitations(ctx context.Context, userID string) ([]models.Invitation, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Invitations == nil {
		return []models.Invitation{}, nil
	}
	return user.Invitations, nil
}
