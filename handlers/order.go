package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"restaurant-api/middleware"
	"restaurant-api/models"
	"restaurant-api/services"
	"restaurant-api/ticket"
	"restaurant-api/validators"

	"github.com/gin-gonic/gin"
)

// CreateOrder places an order for a table (waiter, admin)
func (h *Handler) CreateOrder(c *gin.Context) {
	var req validators.OrderRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateOrderCreation(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	order, err := h.Orders.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Order created successfully", order)
}

// ListOrders returns orders visible to the caller. Filters: status, tableId,
// startDate, endDate
func (h *Handler) ListOrders(c *gin.Context) {
	var q validators.OrderFilterQuery
	_ = c.ShouldBindQuery(&q)
	if res := validators.ValidateOrderFilters(q); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	orders, err := h.Orders.List(c.Request.Context(), middleware.GetActor(c), orderFilter(q))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, orders)
}

// orderFilter converts an already validated query. A plain endDate covers
// the whole day.
func orderFilter(q validators.OrderFilterQuery) services.OrderFilter {
	f := services.OrderFilter{Status: models.OrderStatus(q.Status)}
	if q.TableID != "" {
		id, _ := strconv.ParseUint(q.TableID, 10, 64)
		f.TableID = uint(id)
	}
	if q.StartDate != "" {
		from, _, _ := validators.ParseDate(q.StartDate)
		f.From = &from
	}
	if q.EndDate != "" {
		to, dateOnly, _ := validators.ParseDate(q.EndDate)
		if dateOnly {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &to
	}
	return f
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	order, err := h.Orders.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", order)
}

// GetOrderDetails returns the line items of one order
func (h *Handler) GetOrderDetails(c *gin.Context) {
	id, err := idParam(c, "orderId")
	if err != nil {
		h.fail(c, err)
		return
	}
	details, err := h.Orders.Details(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, details)
}

// UpdateOrderStatus applies a state machine transition for the caller's role
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req validators.StatusUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateOrderStatus(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	order, err := h.Orders.UpdateStatus(c.Request.Context(), middleware.GetActor(c), id, req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Order status updated to "+string(order.Status), order)
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Orders.Delete(c.Request.Context(), middleware.GetActor(c), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Order deleted successfully", nil)
}

// GetOrderTicket streams the order receipt as a PDF attachment
func (h *Handler) GetOrderTicket(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	order, err := h.Orders.Get(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	var buf bytes.Buffer
	if err := ticket.Render(&buf, order, h.Restaurant); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+ticket.Filename(order.ID)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
