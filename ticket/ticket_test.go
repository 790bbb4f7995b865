package ticket

import (
	"bytes"
	"testing"
	"time"

	"restaurant-api/models"

	"github.com/shopspring/decimal"
)

func TestRender(t *testing.T) {
	order := &models.Order{
		ID:        12,
		TableID:   3,
		Table:     &models.Table{ID: 3, Number: 7},
		User:      &models.User{Name: "José"},
		Status:    models.StatusInProgress,
		Total:     decimal.RequireFromString("28.99"),
		CreatedAt: time.Date(2025, 3, 4, 20, 15, 0, 0, time.UTC),
		Details: []models.OrderDetail{
			{DishID: 1, Dish: &models.Dish{Name: "Empanada"}, Quantity: 2, Price: decimal.RequireFromString("10.00")},
			{DishID: 2, Quantity: 1, Price: decimal.RequireFromString("8.99")},
		},
	}

	var buf bytes.Buffer
	if err := Render(&buf, order, Restaurant{Name: "Café Central", Address: "Main St 1", Website: "example.com"}); err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:8])
	}
	if buf.Len() < 500 {
		t.Fatalf("suspiciously small PDF: %d bytes", buf.Len())
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(models.StatusCompleted); got != "Served" {
		t.Fatalf("expected Served, got %q", got)
	}
	if got := StatusLabel("unknown"); got != "unknown" {
		t.Fatalf("expected raw status, got %q", got)
	}
	if Filename(5) != "ticket-5.pdf" {
		t.Fatalf("unexpected filename %q", Filename(5))
	}
}
