package model

import "github.com/shopspring/decimal"

type SpendingTotal struct {
	TotalSpent decimal.Decimal `json:"total_spent"`
	OrderCount int             `json:"order_count"`
}

type CategorySpend struct {
	CategoryName string          `json:"category_name"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
}

// MonthlySpend.Month is formatted "YYYY-MM".
type MonthlySpend struct {
	Month      string          `json:"month"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	OrderCount int             `json:"order_count"`
}

// DailySpend.Day is formatted "YYYY-MM-DD".
type DailySpend struct {
	Day        string          `json:"day"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

// ProductRank ranks a product by total quantity purchased across completed
// orders. Ties break on product id so the ordering is deterministic.
type ProductRank struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Brand         string `json:"brand"`
	CategoryName  string `json:"category_name"`
	TotalQuantity int    `json:"total_quantity"`
	OrderCount    int    `json:"order_count"`
}
