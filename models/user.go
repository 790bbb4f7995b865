package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleCook   UserRole = "cook"
	RoleWaiter UserRole = "waiter"
)

// Roles lists every valid role in display order.
var Roles = []UserRole{RoleAdmin, RoleCook, RoleWaiter}

func (r UserRole) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	Name                 string     `json:"name" gorm:"size:100;not null"`
	Email                string     `json:"email" gorm:"size:191;uniqueIndex;not null"`
	PasswordHash         string     `json:"-" gorm:"not null"`
	Role                 UserRole   `json:"role" gorm:"size:16;not null;default:'waiter'"`
	IsActive             bool       `json:"is_active" gorm:"not null"`
	ResetPasswordToken   *string    `json:"-" gorm:"size:64;index"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
