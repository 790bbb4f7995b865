package handlers

import (
	"net/http"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/services"
	"restaurant-api/validators"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers lists staff accounts, optionally filtered by ?role=
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	if role != "" && !role.Valid() {
		h.fail(c, services.Invalid("role must be one of: admin, cook, waiter"))
		return
	}
	users, err := h.Users.List(c.Request.Context(), role)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, users)
}

// AdminSetUserActive enables or disables a staff account
func (h *Handler) AdminSetUserActive(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req validators.UserActiveRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateUserActive(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	user, err := h.Users.SetActive(c.Request.Context(), middleware.GetActor(c), id, *req.Active)
	if err != nil {
		h.fail(c, err)
		return
	}
	msg := "User deactivated"
	if user.IsActive {
		msg = "User activated"
	}
	respond(c, http.StatusOK, msg, user)
}
