package services

import (
	"context"
	"errors"
	"fmt"

	"restaurant-api/models"
	"restaurant-api/validators"

	"gorm.io/gorm"
)

// TableFilter narrows GET /api/tables. Nil fields are ignored.
type TableFilter struct {
	Number      *int
	Status      *models.TableStatus
	NotStatus   *models.TableStatus
	MinCapacity *int
	MaxCapacity *int
}

type TableService struct {
	db *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{db: db}
}

func (s *TableService) List(ctx context.Context, f TableFilter) ([]models.Table, error) {
	query := s.db.WithContext(ctx)
	if f.Number != nil {
		query = query.Where("number = ?", *f.Number)
	}
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.NotStatus != nil {
		query = query.Where("status <> ?", *f.NotStatus)
	}
	if f.MinCapacity != nil {
		query = query.Where("capacity >= ?", *f.MinCapacity)
	}
	if f.MaxCapacity != nil {
		query = query.Where("capacity <= ?", *f.MaxCapacity)
	}
	var tables []models.Table
	if err := query.Order("number").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *TableService) Get(ctx context.Context, id uint) (*models.Table, error) {
	var table models.Table
	err := s.db.WithContext(ctx).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("table not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	return &table, nil
}

func (s *TableService) Create(ctx context.Context, req validators.TableRequest) (*models.Table, error) {
	table := models.Table{
		Number:   *req.Number,
		Capacity: *req.Capacity,
		Status:   models.TableAvailable,
	}
	if req.Status != "" {
		table.Status = req.Status
	}
	if err := s.ensureNumberFree(ctx, table.Number, 0); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&table).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, Conflict("table number %d already exists", table.Number)
		}
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &table, nil
}

// Update applies a partial update. Setting status here is the admin override
// of occupancy; the order lifecycle normally owns that field.
func (s *TableService) Update(ctx context.Context, id uint, req validators.TableUpdateRequest) (*models.Table, error) {
	table, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	update := map[string]any{}
	if req.Number != nil && *req.Number != table.Number {
		if err := s.ensureNumberFree(ctx, *req.Number, id); err != nil {
			return nil, err
		}
		update["number"] = *req.Number
	}
	if req.Capacity != nil {
		update["capacity"] = *req.Capacity
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if len(update) > 0 {
		if err := s.db.WithContext(ctx).Model(table).Updates(update).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, Conflict("table number %d already exists", *req.Number)
			}
			return nil, fmt.Errorf("update table: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a table that is not occupied and has no order history.
func (s *TableService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("table not found")
			}
			return fmt.Errorf("load table: %w", err)
		}
		if table.Status == models.TableOccupied {
			return Conflict("table %d is occupied", table.Number)
		}
		var refs int64
		if err := tx.Model(&models.Order{}).Where("table_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if refs > 0 {
			return Conflict("table %d is referenced by %d order(s)", table.Number, refs)
		}
		return tx.Delete(&table).Error
	})
}

func (s *TableService) ensureNumberFree(ctx context.Context, number int, exceptID uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Table{}).
		Where("number = ? AND id <> ?", number, exceptID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check table number: %w", err)
	}
	if count > 0 {
		return Conflict("table number %d already exists", number)
	}
	return nil
}
