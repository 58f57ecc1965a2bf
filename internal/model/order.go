package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Order.TotalAmount is derived state: after every line-item mutation it equals
// the sum of the order's line subtotals.
type Order struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

// OrderLine is one line item joined with its product and category for display.
// UnitPrice is the snapshot taken when the line was added, not the product's
// current price.
type OrderLine struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	ProductName  string          `json:"product_name"`
	Brand        string          `json:"brand"`
	UnitMeasure  string          `json:"unit_measure"`
	CategoryName string          `json:"category_name"`
}
