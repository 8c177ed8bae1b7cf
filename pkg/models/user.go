package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents an account that can own and join strategic plans.
// The password is stored as a bcrypt hash and never serialized.
type User struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	RealName             string       `json:"realName,omitempty"`
	Email                string       `json:"email"`
	Password             string       `json:"-"`
	ResetPasswordToken   string       `json:"-"`
	ResetPasswordExpires string       `json:"-"`
	StrategicPlans       []string     `json:"strategicPlans_ListIDS"`
	Invitations          []Invitation `json:"invitations"`
	CreatedAt            string       `json:"created_at,omitempty"`
	UpdatedAt            string       `json:"updated_at,omitempty"`
}

// HasPlan reports whether the user already belongs to the given plan.
func (u *User) HasPlan(planID string) bool {
	for _, id := range u.StrategicPlans {
		if id == planID {
			return true
		}
	}
	return false
}

// InvitationFor returns the invitation entry for planID, if any.
func (u *User) InvitationFor(planID string) (*Invitation, bool) {
	for i := range u.Invitations {
		if u.Invitations[i].PlanID == planID {
			return &u.Invitations[i], true
		}
	}
	return nil, false
}

// UserRegisterRequest represents the request payload for user registration
type UserRegisterRequest struct {
	Name     string `json:"name"`
	RealName string `json:"realName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest represents the request payload for user login
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginResponse represents the response payload for user login
type UserLoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest represents the request payload for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ForgotPasswordRequest asks for a reset token to be issued for an email.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset token for a new password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// TokenClaims represents the JWT token claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Type   string `json:"type"` // "access" or "refresh"
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// GetExpirationTime implements jwt.Claims interface
func (c *TokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

// GetIssuedAt implements jwt.Claims interface
func (c *TokenClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

// GetNotBefore implements jwt.Claims interface
func (c *TokenClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// GetIssuer implements jwt.Claims interface
func (c *TokenClaims) GetIssuer() (string, error) {
	return "", nil
}

// GetSubject implements jwt.Claims interface
func (c *TokenClaims) GetSubject() (string, error) {
	return c.UserID, nil
}

// GetAudience implements jwt.Claims interface
func (c *TokenClaims) GetAudience() (jwt.ClaimStrings, error) {
	return nil, nil
}
