package validators

import (
	"strconv"

	"restaurant-api/models"
)

type TableRequest struct {
	Number   *int               `json:"number" validate:"required,gt=0"`
	Capacity *int               `json:"capacity" validate:"required,gt=0"`
	Status   models.TableStatus `json:"status" validate:"omitempty,oneof=available occupied reserved"`
}

type TableUpdateRequest struct {
	Number   *int                `json:"number" validate:"omitempty,gt=0"`
	Capacity *int                `json:"capacity" validate:"omitempty,gt=0"`
	Status   *models.TableStatus `json:"status" validate:"omitempty,oneof=available occupied reserved"`
}

// TableFilterQuery is the raw query string of GET /api/tables. Disponible is
// the legacy boolean spelling of status=available.
type TableFilterQuery struct {
	Number      string `form:"number"`
	Status      string `form:"status"`
	Disponible  string `form:"disponible"`
	MinCapacity string `form:"minCapacity"`
	MaxCapacity string `form:"maxCapacity"`
}

func ValidateTableCreation(r TableRequest) Result { return check(r) }

func ValidateTableUpdate(r TableUpdateRequest) Result { return check(r) }

func ValidateTableFilters(q TableFilterQuery) Result {
	res := ok()
	positive := func(name, v string) (int, bool) {
		if v == "" {
			return 0, false
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			res.add("%s must be a positive integer", name)
			return 0, false
		}
		return n, true
	}
	positive("number", q.Number)
	if q.Status != "" && !validTableStatus(q.Status) {
		res.add("status must be one of: available, occupied, reserved")
	}
	if q.Disponible != "" && q.Disponible != "true" && q.Disponible != "false" {
		res.add("disponible must be true or false")
	}
	minCap, hasMin := positive("minCapacity", q.MinCapacity)
	maxCap, hasMax := positive("maxCapacity", q.MaxCapacity)
	if hasMin && hasMax && minCap > maxCap {
		res.add("minCapacity cannot be greater than maxCapacity")
	}
	return res
}

func validTableStatus(s string) bool {
	for _, v := range models.TableStatuses {
		if string(v) == s {
			return true
		}
	}
	return false
}
