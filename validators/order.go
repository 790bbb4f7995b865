package validators

import (
	"strconv"

	"restaurant-api/models"
)

type OrderItemRequest struct {
	DishID   uint `json:"dishId" validate:"required"`
	Quantity int  `json:"quantity" validate:"gt=0"`
}

type OrderRequest struct {
	TableID uint               `json:"tableId" validate:"required"`
	Items   []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type StatusUpdateRequest struct {
	Status models.OrderStatus `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

// OrderFilterQuery is the raw query string of GET /api/orders.
type OrderFilterQuery struct {
	Status    string `form:"status"`
	TableID   string `form:"tableId"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func ValidateOrderCreation(r OrderRequest) Result { return check(r) }

func ValidateOrderStatus(r StatusUpdateRequest) Result { return check(r) }

func ValidateOrderFilters(q OrderFilterQuery) Result {
	res := ok()
	if q.Status != "" && !models.OrderStatus(q.Status).Valid() {
		res.add("invalid status filter: %s", q.Status)
	}
	if q.TableID != "" {
		if n, err := strconv.Atoi(q.TableID); err != nil || n <= 0 {
			res.add("tableId must be a positive integer")
		}
	}
	start, startOK := dateField(&res, "startDate", q.StartDate)
	end, endOK := dateField(&res, "endDate", q.EndDate)
	if startOK && endOK && start.After(end) {
		res.add("startDate cannot be after endDate")
	}
	return res
}
