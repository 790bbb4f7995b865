package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-api/models"
	"restaurant-api/validators"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DishFilter narrows GET /api/dishes. Search matches name or description.
type DishFilter struct {
	Available *bool
	Search    string
}

type DishService struct {
	db *gorm.DB
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{db: db}
}

func (s *DishService) List(ctx context.Context, f DishFilter) ([]models.Dish, error) {
	query := s.db.WithContext(ctx)
	if f.Available != nil {
		query = query.Where("available = ?", *f.Available)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("(name LIKE ? OR description LIKE ?)", like, like)
	}
	var dishes []models.Dish
	if err := query.Order("created_at desc, id desc").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	return dishes, nil
}

func (s *DishService) Get(ctx context.Context, id uint) (*models.Dish, error) {
	var dish models.Dish
	err := s.db.WithContext(ctx).First(&dish, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("dish not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load dish: %w", err)
	}
	return &dish, nil
}

func (s *DishService) Create(ctx context.Context, req validators.DishRequest) (*models.Dish, error) {
	dish := models.Dish{
		Name:        req.Name,
		Description: emptyToNil(req.Description),
		Price:       money(*req.Price),
		Available:   true,
	}
	if req.Available != nil {
		dish.Available = *req.Available
	}
	if err := s.db.WithContext(ctx).Create(&dish).Error; err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return &dish, nil
}

// Update applies a partial update. Existing order lines keep their snapshot price.
func (s *DishService) Update(ctx context.Context, id uint, req validators.DishUpdateRequest) (*models.Dish, error) {
	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update := map[string]any{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Description != nil {
		update["description"] = emptyToNil(req.Description)
	}
	if req.Price != nil {
		update["price"] = money(*req.Price)
	}
	if req.Available != nil {
		update["available"] = *req.Available
	}
	if len(update) > 0 {
		if err := s.db.WithContext(ctx).Model(dish).Updates(update).Error; err != nil {
			return nil, fmt.Errorf("update dish: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a dish that no order references. Referenced dishes should be
// marked unavailable instead.
func (s *DishService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dish models.Dish
		if err := tx.First(&dish, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("dish not found")
			}
			return fmt.Errorf("load dish: %w", err)
		}
		var refs int64
		if err := tx.Model(&models.OrderDetail{}).Where("dish_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("count order lines: %w", err)
		}
		if refs > 0 {
			return Conflict("dish %q is referenced by %d order line(s); mark it unavailable instead", dish.Name, refs)
		}
		return tx.Delete(&dish).Error
	})
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
