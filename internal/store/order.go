package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/model"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func scanOrder(scanner interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	var total float64
	err := scanner.Scan(&o.ID, &o.UserID, &o.OrderDate, &total, &o.Status)
	if err != nil {
		return nil, err
	}
	o.TotalAmount = decimal.NewFromFloat(total)
	return &o, nil
}

const orderCols = `id, user_id, order_date, total_amount, status`

// Create opens a new pending order with a zero total.
func (s *OrderStore) Create(userID int64) (*model.Order, error) {
	result, err := s.db.Exec(
		`INSERT INTO orders (user_id, status) VALUES (?, ?)`,
		userID, model.OrderPending,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

// AddLineItem snapshots the product's current price, inserts the line and
// recomputes the order total from scratch, all in one transaction. The order
// must still be pending.
func (s *OrderStore) AddLineItem(orderID, productID int64, quantity int) (*model.OrderLine, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrInvalidArgument)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM orders WHERE id = ?`, orderID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order status: %w", err)
	}
	if status != model.OrderPending {
		return nil, fmt.Errorf("order %d is %s: %w", orderID, status, ErrConflict)
	}

	var price float64
	err = tx.QueryRow(`SELECT unit_price FROM products WHERE id = ?`, productID).Scan(&price)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product price: %w", err)
	}

	subtotal := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity))).Round(2)

	result, err := tx.Exec(
		`INSERT INTO order_details (order_id, product_id, quantity, unit_price, subtotal) VALUES (?, ?, ?, ?, ?)`,
		orderID, productID, quantity, price, subtotal.InexactFloat64(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert line item: %w", err)
	}
	lineID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	// Overwrite, don't increment: the total is always the sum of the lines.
	_, err = tx.Exec(
		`UPDATE orders SET total_amount = ROUND((SELECT COALESCE(SUM(subtotal), 0) FROM order_details WHERE order_id = ?), 2) WHERE id = ?`,
		orderID, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("recompute total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetLineItem(lineID)
}

// Complete marks the order completed. Re-completing a completed order is a
// no-op; completing a cancelled order fails.
func (s *OrderStore) Complete(orderID int64) (*model.Order, error) {
	o, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == model.OrderCancelled {
		return nil, fmt.Errorf("order %d is cancelled: %w", orderID, ErrConflict)
	}
	if o.Status == model.OrderCompleted {
		return o, nil
	}

	_, err = s.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, model.OrderCompleted, orderID)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	return s.Get(orderID)
}

// Cancel marks a pending order cancelled, keeping it and its lines as history.
// Cancelling a cancelled order is a no-op; cancelling a completed order fails.
func (s *OrderStore) Cancel(orderID int64) (*model.Order, error) {
	o, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == model.OrderCompleted {
		return nil, fmt.Errorf("order %d is completed: %w", orderID, ErrConflict)
	}
	if o.Status == model.OrderCancelled {
		return o, nil
	}

	_, err = s.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, model.OrderCancelled, orderID)
	if err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}
	return s.Get(orderID)
}

// Delete removes the order and cascades its line items. Deleting completed
// orders destroys history; callers should confirm before calling.
func (s *OrderStore) Delete(orderID int64) error {
	result, err := s.db.Exec(`DELETE FROM orders WHERE id = ?`, orderID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	return nil
}

func (s *OrderStore) Get(orderID int64) (*model.Order, error) {
	row := s.db.QueryRow(`SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (s *OrderStore) ListForUser(userID int64) ([]model.Order, error) {
	rows, err := s.db.Query(
		`SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY order_date DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func scanOrderLine(scanner interface{ Scan(...any) error }) (*model.OrderLine, error) {
	var l model.OrderLine
	var price, subtotal float64
	err := scanner.Scan(
		&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &price, &subtotal,
		&l.ProductName, &l.Brand, &l.UnitMeasure, &l.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	l.UnitPrice = decimal.NewFromFloat(price)
	l.Subtotal = decimal.NewFromFloat(subtotal)
	return &l, nil
}

const orderLineCols = `od.id, od.order_id, od.product_id, od.quantity, od.unit_price, od.subtotal, p.name, p.brand, p.unit_measure, c.name`

const orderLineJoin = ` FROM order_details od
		JOIN products p ON od.product_id = p.id
		JOIN categories c ON p.category_id = c.id`

func (s *OrderStore) GetLineItem(lineID int64) (*model.OrderLine, error) {
	row := s.db.QueryRow(`SELECT `+orderLineCols+orderLineJoin+` WHERE od.id = ?`, lineID)
	l, err := scanOrderLine(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("line item %d: %w", lineID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return l, nil
}

func (s *OrderStore) LineItems(orderID int64) ([]model.OrderLine, error) {
	rows, err := s.db.Query(
		`SELECT `+orderLineCols+orderLineJoin+` WHERE od.order_id = ? ORDER BY od.id ASC`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		l, err := scanOrderLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		lines = append(lines, *l)
	}
	return lines, rows.Err()
}
