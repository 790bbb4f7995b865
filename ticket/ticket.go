// Package ticket renders printable order receipts.
package ticket

import (
	"fmt"
	"io"

	"restaurant-api/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Restaurant is the header printed on every ticket.
type Restaurant struct {
	Name    string
	Address string
	Phone   string
	Website string
}

var statusLabels = map[models.OrderStatus]string{
	models.StatusPending:    "Pending",
	models.StatusInProgress: "In preparation",
	models.StatusCompleted:  "Served",
	models.StatusCancelled:  "Cancelled",
}

var statusColors = map[models.OrderStatus][3]int{
	models.StatusPending:    {237, 108, 2},
	models.StatusInProgress: {25, 118, 210},
	models.StatusCompleted:  {46, 125, 50},
	models.StatusCancelled:  {198, 40, 40},
}

// StatusLabel is the human readable name of an order status.
func StatusLabel(s models.OrderStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Filename is the attachment name used for an order's ticket.
func Filename(orderID uint) string {
	return fmt.Sprintf("ticket-%d.pdf", orderID)
}

const (
	margin    = 15.0
	pageWidth = 210.0
	lineH     = 7.0
)

// Render writes an A4 PDF receipt for order. The order must have its User,
// Table and Details.Dish relations loaded.
func Render(w io.Writer, order *models.Order, r Restaurant) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetTitle(fmt.Sprintf("Order #%d", order.ID), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentW := pageWidth - 2*margin

	// header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(34, 34, 34)
	pdf.CellFormat(contentW, 10, tr(r.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	for _, line := range []string{r.Address, r.Phone} {
		if line != "" {
			pdf.CellFormat(contentW, 5, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(4)

	waiter := "N/A"
	if order.User != nil {
		waiter = order.User.Name
	}
	table := fmt.Sprint(order.TableID)
	if order.Table != nil {
		table = fmt.Sprint(order.Table.Number)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, lineH, fmt.Sprintf("Order #%d", order.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(contentW, 5, "Date: "+order.CreatedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Table: "+table, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, tr("Served by: "+waiter), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// status chip
	c, ok := statusColors[order.Status]
	if !ok {
		c = [3]int{34, 34, 34}
	}
	pdf.SetFillColor(c[0], c[1], c[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(45, 7, StatusLabel(order.Status), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	// line items
	cols := []struct {
		title string
		w     float64
		align string
	}{
		{"Dish", contentW - 95, "L"},
		{"Qty", 20, "R"},
		{"Price", 35, "R"},
		{"Subtotal", 40, "R"},
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetDrawColor(230, 230, 230)
	for _, col := range cols {
		pdf.CellFormat(col.w, lineH, col.title, "B", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	subtotal := decimal.Zero
	for i, d := range order.Details {
		name := fmt.Sprintf("Dish %d", d.DishID)
		if d.Dish != nil {
			name = d.Dish.Name
		}
		line := d.Subtotal()
		subtotal = subtotal.Add(line)
		fill := i%2 == 1
		pdf.CellFormat(cols[0].w, lineH, tr(name), "", 0, cols[0].align, fill, 0, "")
		pdf.CellFormat(cols[1].w, lineH, fmt.Sprint(d.Quantity), "", 0, cols[1].align, fill, 0, "")
		pdf.CellFormat(cols[2].w, lineH, "$"+d.Price.StringFixed(2), "", 0, cols[2].align, fill, 0, "")
		pdf.CellFormat(cols[3].w, lineH, "$"+line.StringFixed(2), "", 1, cols[3].align, fill, 0, "")
	}
	pdf.Line(margin, pdf.GetY()+1, pageWidth-margin, pdf.GetY()+1)
	pdf.Ln(4)

	// totals
	boxX := pageWidth - margin - 75
	pdf.SetX(boxX)
	pdf.CellFormat(40, lineH, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, lineH, "$"+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetX(boxX)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(40, lineH, "Total:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, lineH, "$"+order.Total.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.Ln(10)

	// footer
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(contentW, 5, "Thank you for your visit!", "", 1, "C", false, 0, "")
	if r.Website != "" {
		pdf.CellFormat(contentW, 5, tr(r.Website), "", 1, "C", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render ticket: %w", err)
	}
	return nil
}
