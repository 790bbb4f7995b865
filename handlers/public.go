package handlers

import (
	"net/http"

	"restaurant-api/models"
	"restaurant-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.Restaurant.Name + " Floor Management API",
		"version": "1.0.0",
	})
}

// Welcome describes the API entry points
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the " + h.Restaurant.Name + " Floor Management API",
		"docs":    "/api/state-machine",
		"health":  "/health",
		"roles":   models.Roles,
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statuses":        models.OrderStatuses,
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": []models.OrderStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Restaurant order lifecycle, per role",
	})
}
