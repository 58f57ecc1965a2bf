package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/model"
)

// AnalyticsStore aggregates a user's completed orders. Pending and cancelled
// orders never contribute to any figure here.
type AnalyticsStore struct {
	db *sql.DB
}

func NewAnalyticsStore(db *sql.DB) *AnalyticsStore {
	return &AnalyticsStore{db: db}
}

// TotalSpending sums the user's completed order totals.
func (s *AnalyticsStore) TotalSpending(userID int64) (*model.SpendingTotal, error) {
	var total float64
	var count int
	err := s.db.QueryRow(
		`SELECT COALESCE(ROUND(SUM(total_amount), 2), 0), COUNT(*)
		FROM orders WHERE user_id = ? AND status = ?`,
		userID, model.OrderCompleted,
	).Scan(&total, &count)
	if err != nil {
		return nil, fmt.Errorf("total spending: %w", err)
	}
	return &model.SpendingTotal{
		TotalSpent: decimal.NewFromFloat(total),
		OrderCount: count,
	}, nil
}

// SpendingByCategory breaks line-item subtotals down by product category,
// optionally bounded by an inclusive order-date range, largest first.
func (s *AnalyticsStore) SpendingByCategory(userID int64, start, end *time.Time) ([]model.CategorySpend, error) {
	query := `SELECT c.name, ROUND(SUM(od.subtotal), 2)
		FROM orders o
		JOIN order_details od ON o.id = od.order_id
		JOIN products p ON od.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE o.user_id = ? AND o.status = ?`
	args := []any{userID, model.OrderCompleted}

	if start != nil {
		query += ` AND date(o.order_date) >= ?`
		args = append(args, start.Format(dateLayout))
	}
	if end != nil {
		query += ` AND date(o.order_date) <= ?`
		args = append(args, end.Format(dateLayout))
	}
	query += ` GROUP BY c.id ORDER BY SUM(od.subtotal) DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("spending by category: %w", err)
	}
	defer rows.Close()

	var spends []model.CategorySpend
	for rows.Next() {
		var cs model.CategorySpend
		var total float64
		if err := rows.Scan(&cs.CategoryName, &total); err != nil {
			return nil, fmt.Errorf("scan category spend: %w", err)
		}
		cs.TotalSpent = decimal.NewFromFloat(total)
		spends = append(spends, cs)
	}
	return spends, rows.Err()
}

// MonthlySpending groups completed order totals by calendar month, ascending.
// Pass year 0 for all years.
func (s *AnalyticsStore) MonthlySpending(userID int64, year int) ([]model.MonthlySpend, error) {
	query := `SELECT strftime('%Y-%m', order_date), ROUND(SUM(total_amount), 2), COUNT(*)
		FROM orders WHERE user_id = ? AND status = ?`
	args := []any{userID, model.OrderCompleted}

	if year > 0 {
		query += ` AND strftime('%Y', order_date) = ?`
		args = append(args, strconv.Itoa(year))
	}
	query += ` GROUP BY strftime('%Y-%m', order_date) ORDER BY strftime('%Y-%m', order_date) ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("monthly spending: %w", err)
	}
	defer rows.Close()

	var months []model.MonthlySpend
	for rows.Next() {
		var m model.MonthlySpend
		var total float64
		if err := rows.Scan(&m.Month, &total, &m.OrderCount); err != nil {
			return nil, fmt.Errorf("scan monthly spend: %w", err)
		}
		m.TotalSpent = decimal.NewFromFloat(total)
		months = append(months, m)
	}
	return months, rows.Err()
}

// WeeklySpending returns daily totals for the seven calendar days ending
// today, ascending. Days without completed orders are absent from the result.
// Today is taken in UTC, the zone CURRENT_TIMESTAMP stamps order_date in.
func (s *AnalyticsStore) WeeklySpending(userID int64) ([]model.DailySpend, error) {
	today := time.Now().UTC().Format(dateLayout)
	rows, err := s.db.Query(
		`SELECT date(order_date), ROUND(SUM(total_amount), 2)
		FROM orders
		WHERE user_id = ? AND status = ?
			AND date(order_date) >= date(?, '-6 day') AND date(order_date) <= ?
		GROUP BY date(order_date)
		ORDER BY date(order_date) ASC`,
		userID, model.OrderCompleted, today, today,
	)
	if err != nil {
		return nil, fmt.Errorf("weekly spending: %w", err)
	}
	defer rows.Close()

	var days []model.DailySpend
	for rows.Next() {
		var d model.DailySpend
		var total float64
		if err := rows.Scan(&d.Day, &total); err != nil {
			return nil, fmt.Errorf("scan daily spend: %w", err)
		}
		d.TotalSpent = decimal.NewFromFloat(total)
		days = append(days, d)
	}
	return days, rows.Err()
}

// TopProducts ranks products by total quantity purchased across completed
// orders. Ties break on product id. Pass limit <= 0 for the default of 10.
func (s *AnalyticsStore) TopProducts(userID int64, limit int) ([]model.ProductRank, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT p.id, p.name, p.brand, c.name,
			SUM(od.quantity), COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_details od ON o.id = od.order_id
		JOIN products p ON od.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE o.user_id = ? AND o.status = ?
		GROUP BY p.id
		ORDER BY SUM(od.quantity) DESC, p.id ASC
		LIMIT ?`,
		userID, model.OrderCompleted, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	var ranks []model.ProductRank
	for rows.Next() {
		var r model.ProductRank
		err := rows.Scan(&r.ProductID, &r.ProductName, &r.Brand, &r.CategoryName, &r.TotalQuantity, &r.OrderCount)
		if err != nil {
			return nil, fmt.Errorf("scan product rank: %w", err)
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}

// SuggestedProducts picks candidates from the user's five most-purchased
// categories (by distinct completed orders), excluding products bought in the
// trailing 30 days. Selection within the pool is randomized; callers get up
// to limit products in no guaranteed sequence. Pass limit <= 0 for the
// default of 5.
func (s *AnalyticsStore) SuggestedProducts(userID int64, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 5
	}
	today := time.Now().UTC().Format(dateLayout)

	rows, err := s.db.Query(
		`WITH user_categories AS (
			SELECT p.category_id
			FROM orders o
			JOIN order_details od ON o.id = od.order_id
			JOIN products p ON od.product_id = p.id
			WHERE o.user_id = ? AND o.status = ?
			GROUP BY p.category_id
			ORDER BY COUNT(DISTINCT o.id) DESC
			LIMIT 5
		),
		recent_products AS (
			SELECT DISTINCT od.product_id
			FROM orders o
			JOIN order_details od ON o.id = od.order_id
			WHERE o.user_id = ? AND o.status = ?
				AND date(o.order_date) >= date(?, '-30 day')
		)
		SELECT p.id, p.name, p.category_id, p.brand, p.unit_price, p.unit_measure, c.name
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.category_id IN (SELECT category_id FROM user_categories)
			AND p.id NOT IN (SELECT product_id FROM recent_products)
		ORDER BY RANDOM()
		LIMIT ?`,
		userID, model.OrderCompleted, userID, model.OrderCompleted, today, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("suggested products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan suggested product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}
