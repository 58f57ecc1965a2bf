package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Storage locations offered by collaborators; the engine stores location as
// plain text and alert queries treat it as an opaque categorical field.
const (
	LocationPantry       = "Pantry"
	LocationRefrigerator = "Refrigerator"
	LocationFreezer      = "Freezer"
	LocationCabinet      = "Cabinet"
	LocationOther        = "Other"
)

// InventoryItem is one batch of a product on hand. Duplicate product/location
// rows are intentional; each row is its own batch with its own expiry.
type InventoryItem struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	ProductID   int64      `json:"product_id"`
	Quantity    int        `json:"quantity"`
	MinQuantity int        `json:"min_quantity"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Location    string     `json:"location"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
}

// InventoryEntry is an inventory row joined with its product and category.
type InventoryEntry struct {
	InventoryItem
	ProductName  string          `json:"product_name"`
	Brand        string          `json:"brand"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitMeasure  string          `json:"unit_measure"`
	CategoryName string          `json:"category_name"`
}

// ExpiredItem reports DaysExpired >= 1; an item expiring today is not expired.
type ExpiredItem struct {
	InventoryEntry
	DaysExpired int `json:"days_expired"`
}

// ExpiringItem reports DaysUntilExpiry >= 0; zero means it expires today.
type ExpiringItem struct {
	InventoryEntry
	DaysUntilExpiry int `json:"days_until_expiry"`
}

type InventorySummary struct {
	TotalItems   int `json:"total_items"`
	ExpiringSoon int `json:"expiring_soon_count"`
	Expired      int `json:"expired_count"`
	LowStock     int `json:"low_stock_count"`
	OutOfStock   int `json:"out_of_stock_count"`
}

type LocationCount struct {
	Location      string `json:"location"`
	Items         int    `json:"items"`
	TotalQuantity int    `json:"total_quantity"`
}

type CategoryCount struct {
	CategoryName string `json:"category_name"`
	Items        int    `json:"items"`
}
