package handlers

import (
	"net/http"

	"restaurant-api/services"
	"restaurant-api/validators"

	"github.com/gin-gonic/gin"
)

// ListDishes returns the catalog (public). Filters: available, search
func (h *Handler) ListDishes(c *gin.Context) {
	var q validators.DishFilterQuery
	_ = c.ShouldBindQuery(&q)
	if res := validators.ValidateDishFilters(q); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	filter := services.DishFilter{Search: q.Search}
	if q.Available != "" {
		available := q.Available == "true"
		filter.Available = &available
	}
	dishes, err := h.Dishes.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, dishes)
}

func (h *Handler) GetDish(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	dish, err := h.Dishes.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", dish)
}

func (h *Handler) CreateDish(c *gin.Context) {
	var req validators.DishRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateDishCreation(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	dish, err := h.Dishes.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Dish created successfully", dish)
}

func (h *Handler) UpdateDish(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req validators.DishUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	req.Normalize()
	if res := validators.ValidateDishUpdate(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	dish, err := h.Dishes.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Dish updated successfully", dish)
}

func (h *Handler) DeleteDish(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Dishes.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Dish deleted successfully", nil)
}
