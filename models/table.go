package models

import "time"

// TableStatus is the occupancy state of a dining table
type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
)

var TableStatuses = []TableStatus{TableAvailable, TableOccupied, TableReserved}

type Table struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Number    int         `json:"number" gorm:"uniqueIndex;not null"`
	Capacity  int         `json:"capacity" gorm:"not null"`
	Status    TableStatus `json:"status" gorm:"size:16;not null;default:'available'"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// TableName keeps the SQL name explicit; "tables" is also what gorm would pick.
func (Table) TableName() string { return "tables" }
