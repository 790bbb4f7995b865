package validators

import (
	"strings"

	"restaurant-api/models"
)

type RegisterRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Role     models.UserRole `json:"role" validate:"required,oneof=admin cook waiter"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,len=64,hexadecimal"`
	Password string `json:"password" validate:"required,min=6"`
}

type ProfileUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

func (r *ProfileUpdateRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
	}
}

type UserActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

func ValidateRegister(r RegisterRequest) Result { return check(r) }

func ValidateLogin(r LoginRequest) Result { return check(r) }

func ValidateForgotPassword(r ForgotPasswordRequest) Result { return check(r) }

func ValidateResetPassword(r ResetPasswordRequest) Result { return check(r) }

func ValidateProfileUpdate(r ProfileUpdateRequest) Result {
	res := check(r)
	if r.Name == nil && r.Email == nil && r.Password == nil {
		res.add("at least one of name, email or password must be provided")
	}
	return res
}

func ValidateUserActive(r UserActiveRequest) Result { return check(r) }
