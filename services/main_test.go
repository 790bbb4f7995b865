package services

import (
	"context"
	"path/filepath"
	"testing"

	"restaurant-api/config"
	"restaurant-api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	db, err := config.OpenDB(config.DatabaseConfig{Driver: config.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	u := models.User{Name: string(role), Email: email, PasswordHash: "x", Role: role, IsActive: true}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func createDish(t *testing.T, db *gorm.DB, name, price string, available bool) *models.Dish {
	t.Helper()
	d := models.Dish{Name: name, Price: decimal.RequireFromString(price), Available: available}
	if err := db.Create(&d).Error; err != nil {
		t.Fatalf("create dish: %v", err)
	}
	return &d
}

func createTable(t *testing.T, db *gorm.DB, number int, status models.TableStatus) *models.Table {
	t.Helper()
	tb := models.Table{Number: number, Capacity: 4, Status: status}
	if err := db.Create(&tb).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return &tb
}

func tableStatus(t *testing.T, db *gorm.DB, id uint) models.TableStatus {
	t.Helper()
	var tb models.Table
	if err := db.First(&tb, id).Error; err != nil {
		t.Fatalf("reload table: %v", err)
	}
	return tb.Status
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %q (%v)", want, got, err)
	}
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.WithContext(context.Background()).Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}
