package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShoppingList struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// ShoppingListSummary annotates a list with its item counts for overview pages.
type ShoppingListSummary struct {
	ShoppingList
	TotalItems     int `json:"total_items"`
	PurchasedItems int `json:"purchased_items"`
}

// ShoppingListEntry is a list item joined with its product and category.
// Lists do not snapshot prices; UnitPrice is the product's current price.
type ShoppingListEntry struct {
	ID           int64           `json:"id"`
	ListID       int64           `json:"list_id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	IsPurchased  bool            `json:"is_purchased"`
	ProductName  string          `json:"product_name"`
	Brand        string          `json:"brand"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitMeasure  string          `json:"unit_measure"`
	CategoryName string          `json:"category_name"`
}
