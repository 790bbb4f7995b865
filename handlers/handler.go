package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"restaurant-api/services"
	"restaurant-api/ticket"

	"github.com/gin-gonic/gin"
)

// Handler holds the services behind the HTTP API.
type Handler struct {
	Auth       *services.AuthService
	Users      *services.UserService
	Dishes     *services.DishService
	Tables     *services.TableService
	Orders     *services.OrderService
	Restaurant ticket.Restaurant
	// Production hides internal error detail from clients.
	Production bool
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Count   *int     `json:"count,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func respondList[T any](c *gin.Context, items []T) {
	n := len(items)
	c.JSON(http.StatusOK, Envelope{Success: true, Data: items, Count: &n})
}

var statusByKind = map[services.Kind]int{
	services.KindInvalid:      http.StatusBadRequest,
	services.KindUnauthorized: http.StatusUnauthorized,
	services.KindForbidden:    http.StatusForbidden,
	services.KindNotFound:     http.StatusNotFound,
	services.KindConflict:     http.StatusConflict,
}

// fail maps service errors onto HTTP statuses. Anything unexpected is logged
// and reported as a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var se *services.Error
	if errors.As(err, &se) {
		c.JSON(statusByKind[se.Kind], Envelope{Success: false, Message: se.Message, Errors: se.Details})
		return
	}
	slog.ErrorContext(c.Request.Context(), "request failed",
		"request_id", c.GetString("requestID"),
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	body := Envelope{Success: false, Message: "Internal server error"}
	if !h.Production {
		body.Error = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// bind decodes the JSON body into req. Syntax and type errors become 400.
func bind(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return services.Invalid("invalid request body: %s", err.Error())
	}
	return nil
}

func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.Invalid("%s must be a positive integer", name)
	}
	return uint(id), nil
}
