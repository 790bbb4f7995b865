package handlers

import (
	"net/http"
	"strconv"

	"restaurant-api/models"
	"restaurant-api/services"
	"restaurant-api/validators"

	"github.com/gin-gonic/gin"
)

// ListTables returns tables (public). Filters: number, status, disponible,
// minCapacity, maxCapacity
func (h *Handler) ListTables(c *gin.Context) {
	var q validators.TableFilterQuery
	_ = c.ShouldBindQuery(&q)
	if res := validators.ValidateTableFilters(q); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	tables, err := h.Tables.List(c.Request.Context(), tableFilter(q))
	if err != nil {
		h.fail(c, err)
		return
	}
	respondList(c, tables)
}

// tableFilter converts an already validated query.
func tableFilter(q validators.TableFilterQuery) services.TableFilter {
	var f services.TableFilter
	atoi := func(s string) *int {
		if s == "" {
			return nil
		}
		n, _ := strconv.Atoi(s)
		return &n
	}
	f.Number = atoi(q.Number)
	f.MinCapacity = atoi(q.MinCapacity)
	f.MaxCapacity = atoi(q.MaxCapacity)

	available := models.TableAvailable
	switch {
	case q.Status != "":
		status := models.TableStatus(q.Status)
		f.Status = &status
	case q.Disponible == "true":
		f.Status = &available
	case q.Disponible == "false":
		f.NotStatus = &available
	}
	return f
}

func (h *Handler) GetTable(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	table, err := h.Tables.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "", table)
}

func (h *Handler) CreateTable(c *gin.Context) {
	var req validators.TableRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateTableCreation(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	table, err := h.Tables.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "Table created successfully", table)
}

func (h *Handler) UpdateTable(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req validators.TableUpdateRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	if res := validators.ValidateTableUpdate(req); !res.Valid {
		h.fail(c, services.ValidationFailed(res.Errors))
		return
	}

	table, err := h.Tables.Update(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Table updated successfully", table)
}

func (h *Handler) DeleteTable(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.Tables.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Table deleted successfully", nil)
}
