package validators

import (
	"strings"
)

type DishRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"required,gt=0"`
	Available   *bool    `json:"available"`
}

func (r *DishRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
	}
}

// DishUpdateRequest carries a partial update; nil fields are left unchanged.
type DishUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Available   *bool    `json:"available"`
}

func (r *DishUpdateRequest) Normalize() {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		*r.Description = strings.TrimSpace(*r.Description)
	}
}

// DishFilterQuery is the raw query string of GET /api/dishes.
type DishFilterQuery struct {
	Available string `form:"available"`
	Search    string `form:"search"`
}

func ValidateDishCreation(r DishRequest) Result { return check(r) }

func ValidateDishUpdate(r DishUpdateRequest) Result { return check(r) }

func ValidateDishFilters(q DishFilterQuery) Result {
	res := ok()
	if q.Available != "" && q.Available != "true" && q.Available != "false" {
		res.add("available must be true or false")
	}
	if len(q.Search) > 100 {
		res.add("search must be at most 100 characters")
	}
	return res
}
