// Package events publishes order lifecycle notifications for kitchen and
// floor displays. Publishing happens after the database commit and is best
// effort: it never drives table state.
package events

//go:generate mockgen -source=events.go -destination=../mocks/mock_publisher.go -package=mocks

import (
	"context"
	"time"

	"restaurant-api/models"
)

// StatusChanged is emitted when an order is created, moves status or is deleted.
type StatusChanged struct {
	OrderID   uint               `json:"order_id"`
	TableID   uint               `json:"table_id"`
	OldStatus models.OrderStatus `json:"old_status,omitempty"`
	NewStatus models.OrderStatus `json:"new_status,omitempty"`
	ChangedBy uint               `json:"changed_by"`
	Role      models.UserRole    `json:"role"`
	Deleted   bool               `json:"deleted,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

type Publisher interface {
	PublishStatusChanged(ctx context.Context, evt StatusChanged) error
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishStatusChanged(context.Context, StatusChanged) error { return nil }
