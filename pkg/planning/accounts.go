package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"strategic-planning-backend/pkg/database"
	"strategic-planning-backend/pkg/models"
)

// resetTokenTTL bounds how long a password reset token stays usable.
const resetTokenTTL = time.Hour

// Register creates a new account with a bcrypt-hashed password.
// Email and name must both be unique; the store enforces that and the
// duplicate error is passed through unchanged.
func (s *Service) Register(ctx context.Context, req *models.UserRegisterRequest) (*models.User, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:           req.Name,
		RealName:       req.RealName,
		Email:          req.Email,
		Password:       string(hash),
		StrategicPlans: []string{},
		Invitations:    []models.Invitation{},
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user registered", "userId", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies the credentials and returns the account. Unknown email
// and wrong password produce the same error so callers cannot probe for
// registered addresses.
func (s *Service) Login(ctx context.Context, req *models.UserLoginRequest) (*models.User, error) {
	if err := req.Validate().OrNil(); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser loads a single account by id.
func (s *Service) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.GetUserByID(ctx, id)
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.store.ListUsers(ctx)
}

// ForgotPassword issues a fresh reset token for the account and returns
// it. The token replaces any previous one and expires after one hour.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = time.Now().UTC().Add(resetTokenTTL).Format(time.RFC3339)
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return "", err
	}

	slog.Info("password reset token issued", "userId", user.ID)
	return token, nil
}

// ResetPassword sets a new password for the account holding the token.
// The token is single use: it is cleared on success.
func (s *Service) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	if err := req.Validate().OrNil(); err != nil {
		return err
	}

	user, err := s.store.GetUserByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	expires, err := time.Parse(time.RFC3339, user.ResetPasswordExpires)
	if err != nil || time.Now().UTC().After(expires) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = ""
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	slog.Info("password reset", "userId", user.ID)
	return nil
}
