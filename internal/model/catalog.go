package model

import "github.com/shopspring/decimal"

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is shared reference data; it is owned by no user. CategoryName is
// populated on every read because the catalog always joins categories.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	CategoryID   int64           `json:"category_id"`
	Brand        string          `json:"brand"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitMeasure  string          `json:"unit_measure"`
	CategoryName string          `json:"category_name"`
}
