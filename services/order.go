package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"restaurant-api/events"
	"restaurant-api/models"
	"restaurant-api/statemachine"
	"restaurant-api/validators"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   models.UserRole
}

// OrderFilter narrows GET /api/orders. Zero values are ignored.
type OrderFilter struct {
	Status  models.OrderStatus
	TableID uint
	From    *time.Time
	To      *time.Time
}

type OrderService struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

func NewOrderService(db *gorm.DB, pub events.Publisher) *OrderService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &OrderService{db: db, events: pub, now: time.Now}
}

// kitchenVisible is the set of statuses a cook may read.
func kitchenVisible(status models.OrderStatus) bool {
	return status.Active()
}

func canView(actor Actor, order *models.Order) error {
	if actor.Role == models.RoleCook && !kitchenVisible(order.Status) {
		return Forbidden("you do not have permission to view this order")
	}
	return nil
}

// Create places an order for a free table. The table claim, the order row, its
// line items and the first history entry commit together or not at all.
func (s *OrderService) Create(ctx context.Context, actor Actor, req validators.OrderRequest) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, req.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("table not found")
			}
			return fmt.Errorf("load table: %w", err)
		}
		if table.Status != models.TableAvailable {
			return Invalid("table %d is not available (current status: %s)", table.Number, table.Status)
		}

		total := decimal.Zero
		details := make([]models.OrderDetail, 0, len(req.Items))
		for _, item := range req.Items {
			var dish models.Dish
			if err := tx.First(&dish, item.DishID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return NotFound("dish with id %d not found", item.DishID)
				}
				return fmt.Errorf("load dish: %w", err)
			}
			if !dish.Available {
				return Invalid("dish %q is not available", dish.Name)
			}
			detail := models.OrderDetail{DishID: dish.ID, Quantity: item.Quantity, Price: dish.Price}
			total = total.Add(detail.Subtotal())
			details = append(details, detail)
		}

		order = models.Order{
			UserID:  actor.UserID,
			TableID: table.ID,
			Status:  models.StatusPending,
			Total:   total.Round(2),
			Details: details,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if err := recordHistory(tx, order.ID, "", models.StatusPending, actor); err != nil {
			return err
		}

		// the conditional update makes concurrent orders for one table race on a row lock
		res := tx.Model(&models.Table{}).
			Where("id = ? AND status = ?", table.ID, models.TableAvailable).
			Update("status", models.TableOccupied)
		if res.Error != nil {
			return fmt.Errorf("occupy table: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return Conflict("table %d was taken by another order", table.Number)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.StatusChanged{
		OrderID:   order.ID,
		TableID:   order.TableID,
		NewStatus: models.StatusPending,
		ChangedBy: actor.UserID,
		Role:      actor.Role,
	})
	return s.load(ctx, order.ID, false)
}

// List returns orders matching f, newest first. Cooks only ever see active
// orders; an explicit status filter is intersected with that set.
func (s *OrderService) List(ctx context.Context, actor Actor, f OrderFilter) ([]models.Order, error) {
	query := withRelations(s.db.WithContext(ctx))
	if actor.Role == models.RoleCook {
		if f.Status != "" && !kitchenVisible(f.Status) {
			return []models.Order{}, nil
		}
		query = query.Where("orders.status IN ?", []models.OrderStatus{models.StatusPending, models.StatusInProgress})
	}
	if f.Status != "" {
		query = query.Where("orders.status = ?", f.Status)
	}
	if f.TableID != 0 {
		query = query.Where("orders.table_id = ?", f.TableID)
	}
	if f.From != nil {
		query = query.Where("orders.created_at >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("orders.created_at <= ?", *f.To)
	}

	orders := []models.Order{}
	if err := query.Order("orders.created_at desc, orders.id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one order with its relations and status history.
func (s *OrderService) Get(ctx context.Context, actor Actor, id uint) (*models.Order, error) {
	order, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := canView(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Details returns the line items of one order.
func (s *OrderService) Details(ctx context.Context, actor Actor, orderID uint) ([]models.OrderDetail, error) {
	order, err := s.Get(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	return order.Details, nil
}

// UpdateStatus moves an order along the state machine for the actor's role.
// Leaving the active set frees the table; an admin reopening an order claims
// it again.
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, id uint, to models.OrderStatus) (*models.Order, error) {
	var from models.OrderStatus
	var tableID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order not found")
			}
			return fmt.Errorf("load order: %w", err)
		}
		from, tableID = order.Status, order.TableID

		if err := statemachine.CanTransition(from, to, actor.Role); err != nil {
			return Forbidden("%s", err.Error())
		}

		if err := tx.Model(&order).Update("status", to).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		if err := recordHistory(tx, order.ID, from, to, actor); err != nil {
			return err
		}

		switch {
		case from.Active() && !to.Active():
			if err := tx.Model(&models.Table{}).Where("id = ?", order.TableID).
				Update("status", models.TableAvailable).Error; err != nil {
				return fmt.Errorf("free table: %w", err)
			}
		case !from.Active() && to.Active():
			res := tx.Model(&models.Table{}).
				Where("id = ? AND status = ?", order.TableID, models.TableAvailable).
				Update("status", models.TableOccupied)
			if res.Error != nil {
				return fmt.Errorf("occupy table: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return Conflict("cannot reopen order: its table is not available")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.StatusChanged{
		OrderID:   id,
		TableID:   tableID,
		OldStatus: from,
		NewStatus: to,
		ChangedBy: actor.UserID,
		Role:      actor.Role,
	})
	return s.load(ctx, id, true)
}

// Delete removes an order, its line items and history. Only admins may delete
// and completed orders are kept.
func (s *OrderService) Delete(ctx context.Context, actor Actor, id uint) error {
	if actor.Role != models.RoleAdmin {
		return Forbidden("only administrators can delete orders")
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Table").First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order not found")
			}
			return fmt.Errorf("load order: %w", err)
		}
		if order.Status == models.StatusCompleted {
			return Invalid("completed orders cannot be deleted")
		}

		if order.Status.Active() && order.Table != nil && order.Table.Status == models.TableOccupied {
			if err := tx.Model(order.Table).Update("status", models.TableAvailable).Error; err != nil {
				return fmt.Errorf("free table: %w", err)
			}
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderDetail{}).Error; err != nil {
			return fmt.Errorf("delete order details: %w", err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderStatusHistory{}).Error; err != nil {
			return fmt.Errorf("delete order history: %w", err)
		}
		if err := tx.Delete(&models.Order{}, order.ID).Error; err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.StatusChanged{
		OrderID:   order.ID,
		TableID:   order.TableID,
		OldStatus: order.Status,
		ChangedBy: actor.UserID,
		Role:      actor.Role,
		Deleted:   true,
	})
	return nil
}

func (s *OrderService) load(ctx context.Context, id uint, history bool) (*models.Order, error) {
	query := withRelations(s.db.WithContext(ctx))
	if history {
		query = query.Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_histories.id")
		})
	}
	var order models.Order
	err := query.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NotFound("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	return &order, nil
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Table").
		Preload("Details", func(db *gorm.DB) *gorm.DB { return db.Order("order_details.id") }).
		Preload("Details.Dish")
}

func recordHistory(tx *gorm.DB, orderID uint, from, to models.OrderStatus, actor Actor) error {
	entry := models.OrderStatusHistory{
		OrderID:    orderID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  actor.UserID,
		Role:       actor.Role,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record status history: %w", err)
	}
	return nil
}

func (s *OrderService) publish(ctx context.Context, evt events.StatusChanged) {
	evt.Timestamp = s.now()
	if err := s.events.PublishStatusChanged(ctx, evt); err != nil {
		slog.WarnContext(ctx, "order event not published", "order_id", evt.OrderID, "error", err)
	}
}
