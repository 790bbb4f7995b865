package handlers

import (
	"net/http"

	"restaurant-api/middleware"
	"restaurant-api/services"
	"restaurant-api/validators"

	"github.com/gin-gonic/gin"
)

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req validators.RegisterRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateRegister(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	result, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Account created successfully", result)
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateLogin(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	result, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", result)
}

const forgotPasswordMessage = "If the email is registered, you will receive a link to reset your password"

// ForgotPassword answers identically whether or not the account exists
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req validators.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateForgotPassword(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, forgotPasswordMessage, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req validators.ResetPasswordRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateResetPassword(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	if err := h.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Password updated successfully", nil)
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Users.Get(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", user)
}

// UpdateProfile changes the caller's name, email or password
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req validators.ProfileUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateProfileUpdate(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	user, err := h.Users.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Profile updated successfully", user)
}
