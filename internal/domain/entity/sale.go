package entity

import (
	"time"

	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
)

// LineItem is one product entry in a draft sale. PricePerPiece and
// TotalAmount are derived and must only ever be set through Recompute.
type LineItem struct {
	ID            string            `json:"id"`
	Category      enum.Category     `json:"category"`
	Room          string            `json:"room"`
	ProductName   string            `json:"product_name"`
	ProductCode   string            `json:"product_code"`
	SizeFinish    string            `json:"size_finish"`
	MRP           float64           `json:"mrp"`
	DiscountType  enum.DiscountType `json:"discount_type"`
	DiscountValue float64           `json:"discount_value"`
	Quantity      float64           `json:"quantity"`
	PricePerPiece float64           `json:"price_per_piece"`
	TotalAmount   float64           `json:"total_amount"`
}

// Recompute refreshes the derived fields from the canonical pricing inputs.
func (i *LineItem) Recompute() {
	i.PricePerPiece = calc.PricePerPiece(i.MRP, i.DiscountType.String(), i.DiscountValue)
	i.TotalAmount = calc.LineTotal(i.PricePerPiece, i.Quantity)
}

// CalcItem converts the line item into the pricing engine's input shape.
func (i LineItem) CalcItem() calc.Item {
	return calc.Item{
		MRP:           i.MRP,
		DiscountType:  i.DiscountType.String(),
		DiscountValue: i.DiscountValue,
		Quantity:      i.Quantity,
	}
}

// DraftSale is the ordered, not-yet-submitted collection of line items a
// salesperson assembles. Insertion order is significant for display only.
type DraftSale struct {
	Items []LineItem
}

// GrandTotal recomputes the running total from scratch on every call.
func (d *DraftSale) GrandTotal() float64 {
	items := make([]calc.Item, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, it.CalcItem())
	}
	return calc.GrandTotal(items)
}

// SaleDetail is a confirmed sale as returned by the backend, with its full
// line-item list and the attached client contact.
type SaleDetail struct {
	ID          string          `json:"id"`
	Client      ClientContact   `json:"client"`
	Items       []LineItem      `json:"items"`
	TotalAmount float64         `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Status      enum.SaleStatus `json:"status"`
}
