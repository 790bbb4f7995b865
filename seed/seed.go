// Package seed loads demo staff, dishes and tables into an empty database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type staffMember struct {
	name, email, password string
	role                  models.UserRole
}

var staff = []staffMember{
	{"Administrator", "admin@example.com", "Admin123", models.RoleAdmin},
	{"Kitchen", "cook@example.com", "Cook123", models.RoleCook},
	{"Floor", "waiter@example.com", "Waiter123", models.RoleWaiter},
}

var dishes = []struct {
	name, description, price string
}{
	{"Pizza Margherita", "Classic pizza with tomato sauce, fresh mozzarella and basil", "12.50"},
	{"Pasta Carbonara", "Pasta with egg, pancetta, pecorino and black pepper", "15.00"},
	{"Risotto ai Funghi", "Creamy mushroom risotto with white wine and parmesan", "18.00"},
	{"Caesar Salad", "Romaine, croutons, parmesan and Caesar dressing", "10.00"},
	{"Tiramisu", "Ladyfingers, coffee, mascarpone and cocoa", "7.25"},
	{"Cola", "Classic cola soft drink", "3.50"},
	{"Sparkling Water", "Natural sparkling mineral water", "2.50"},
	{"Espresso", "Traditional Italian espresso", "2.00"},
	{"Apple Pie", "Homemade apple pie with cinnamon", "6.00"},
	{"Pasta Pesto", "Pasta with Genovese pesto, pine nuts and parmesan", "14.00"},
}

var tableCapacities = []int{4, 2, 6, 2, 8, 3, 4, 4, 2, 6}

// Run inserts whatever demo data is missing. It is safe to call on every start.
func Run(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedStaff(tx); err != nil {
			return err
		}
		if err := seedDishes(tx); err != nil {
			return err
		}
		return seedTables(tx)
	})
}

func seedStaff(tx *gorm.DB) error {
	for _, m := range staff {
		var existing models.User
		err := tx.Where("email = ?", m.email).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed users: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(m.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		user := models.User{Name: m.name, Email: m.email, PasswordHash: string(hash), Role: m.role, IsActive: true}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		slog.Info("seeded user", "email", m.email, "role", m.role)
	}
	return nil
}

func seedDishes(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&models.Dish{}).Count(&n).Error; err != nil {
		return fmt.Errorf("seed dishes: %w", err)
	}
	if n > 0 {
		return nil
	}
	rows := make([]models.Dish, 0, len(dishes))
	for _, d := range dishes {
		desc := d.description
		rows = append(rows, models.Dish{
			Name:        d.name,
			Description: &desc,
			Price:       decimal.RequireFromString(d.price),
			Available:   true,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed dishes: %w", err)
	}
	slog.Info("seeded dishes", "count", len(rows))
	return nil
}

func seedTables(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&models.Table{}).Count(&n).Error; err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	if n > 0 {
		return nil
	}
	rows := make([]models.Table, 0, len(tableCapacities))
	for i, c := range tableCapacities {
		rows = append(rows, models.Table{Number: i + 1, Capacity: c, Status: models.TableAvailable})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("seed tables: %w", err)
	}
	slog.Info("seeded tables", "count", len(rows))
	return nil
}
