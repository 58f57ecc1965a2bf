package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/model"
)

type ShoppingListStore struct {
	db *sql.DB
}

func NewShoppingListStore(db *sql.DB) *ShoppingListStore {
	return &ShoppingListStore{db: db}
}

func scanList(scanner interface{ Scan(...any) error }) (*model.ShoppingList, error) {
	var l model.ShoppingList
	var active int
	err := scanner.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &active)
	if err != nil {
		return nil, err
	}
	l.IsActive = active != 0
	return &l, nil
}

const listCols = `id, user_id, name, created_at, is_active`

func (s *ShoppingListStore) Create(userID int64, name string) (*model.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("list name is required: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`INSERT INTO shopping_lists (user_id, name) VALUES (?, ?)`,
		userID, name,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert list: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

func (s *ShoppingListStore) Get(listID int64) (*model.ShoppingList, error) {
	row := s.db.QueryRow(`SELECT `+listCols+` FROM shopping_lists WHERE id = ?`, listID)
	l, err := scanList(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	return l, nil
}

func (s *ShoppingListStore) Delete(listID int64) error {
	result, err := s.db.Exec(`DELETE FROM shopping_lists WHERE id = ?`, listID)
	if err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	return nil
}

// ListForUser returns the user's lists, newest first, each annotated with its
// total and purchased item counts.
func (s *ShoppingListStore) ListForUser(userID int64) ([]model.ShoppingListSummary, error) {
	rows, err := s.db.Query(
		`SELECT sl.id, sl.user_id, sl.name, sl.created_at, sl.is_active,
			COUNT(sli.id),
			COALESCE(SUM(CASE WHEN sli.is_purchased = 1 THEN 1 ELSE 0 END), 0)
		FROM shopping_lists sl
		LEFT JOIN shopping_list_items sli ON sl.id = sli.list_id
		WHERE sl.user_id = ?
		GROUP BY sl.id
		ORDER BY sl.created_at DESC, sl.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	var lists []model.ShoppingListSummary
	for rows.Next() {
		var sum model.ShoppingListSummary
		var active int
		err := rows.Scan(
			&sum.ID, &sum.UserID, &sum.Name, &sum.CreatedAt, &active,
			&sum.TotalItems, &sum.PurchasedItems,
		)
		if err != nil {
			return nil, fmt.Errorf("scan list summary: %w", err)
		}
		sum.IsActive = active != 0
		lists = append(lists, sum)
	}
	return lists, rows.Err()
}

// AddItem adds a product to an active list. If the product is already on the
// list its quantity is incremented instead of inserting a duplicate row.
func (s *ShoppingListStore) AddItem(listID, productID int64, quantity int) (*model.ShoppingListEntry, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrInvalidArgument)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var active int
	err = tx.QueryRow(`SELECT is_active FROM shopping_lists WHERE id = ?`, listID).Scan(&active)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %d: %w", listID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get list: %w", err)
	}
	if active == 0 {
		return nil, fmt.Errorf("list %d is inactive: %w", listID, ErrConflict)
	}

	_, err = tx.Exec(
		`INSERT INTO shopping_list_items (list_id, product_id, quantity) VALUES (?, ?, ?)
			ON CONFLICT (list_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		listID, productID, quantity,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert list item: %w", err)
	}

	var itemID int64
	err = tx.QueryRow(
		`SELECT id FROM shopping_list_items WHERE list_id = ? AND product_id = ?`,
		listID, productID,
	).Scan(&itemID)
	if err != nil {
		return nil, fmt.Errorf("get list item id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetItem(itemID)
}

// TogglePurchased flips the item's purchased flag and nothing else.
func (s *ShoppingListStore) TogglePurchased(itemID int64) (*model.ShoppingListEntry, error) {
	result, err := s.db.Exec(
		`UPDATE shopping_list_items SET is_purchased = 1 - is_purchased WHERE id = ?`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle purchased: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("list item %d: %w", itemID, ErrNotFound)
	}
	return s.GetItem(itemID)
}

func scanListEntry(scanner interface{ Scan(...any) error }) (*model.ShoppingListEntry, error) {
	var e model.ShoppingListEntry
	var purchased int
	var price float64
	err := scanner.Scan(
		&e.ID, &e.ListID, &e.ProductID, &e.Quantity, &purchased,
		&e.ProductName, &e.Brand, &price, &e.UnitMeasure, &e.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	e.IsPurchased = purchased != 0
	e.UnitPrice = decimal.NewFromFloat(price)
	return &e, nil
}

const listEntryCols = `sli.id, sli.list_id, sli.product_id, sli.quantity, sli.is_purchased, p.name, p.brand, p.unit_price, p.unit_measure, c.name`

const listEntryJoin = ` FROM shopping_list_items sli
		JOIN products p ON sli.product_id = p.id
		JOIN categories c ON p.category_id = c.id`

func (s *ShoppingListStore) GetItem(itemID int64) (*model.ShoppingListEntry, error) {
	row := s.db.QueryRow(`SELECT `+listEntryCols+listEntryJoin+` WHERE sli.id = ?`, itemID)
	e, err := scanListEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get list item: %w", err)
	}
	return e, nil
}

// Items returns the list's items ordered by category then product name, so
// collaborators can group contiguous category runs.
func (s *ShoppingListStore) Items(listID int64) ([]model.ShoppingListEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+listEntryCols+listEntryJoin+` WHERE sli.list_id = ? ORDER BY c.name ASC, p.name ASC`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var entries []model.ShoppingListEntry
	for rows.Next() {
		e, err := scanListEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan list item: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ConvertToOrder turns an active, non-empty list into a completed order in a
// single transaction. Line items snapshot the products' current prices; the
// list's items are retained under the now-inactive list. A second conversion
// of the same list fails with ErrEmptyList because the guarded is_active flip
// happens before the order is created.
func (s *ShoppingListStore) ConvertToOrder(listID, userID int64) (*model.Order, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE shopping_lists SET is_active = 0 WHERE id = ? AND is_active = 1`,
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("deactivate list: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM shopping_lists WHERE id = ?`, listID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check list: %w", err)
		}
		if exists == 0 {
			return nil, fmt.Errorf("list %d: %w", listID, ErrNotFound)
		}
		return nil, fmt.Errorf("list %d was already converted: %w", listID, ErrEmptyList)
	}

	var itemCount int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM shopping_list_items WHERE list_id = ?`, listID).Scan(&itemCount); err != nil {
		return nil, fmt.Errorf("count list items: %w", err)
	}
	if itemCount == 0 {
		// Rollback restores is_active; no order becomes visible.
		return nil, fmt.Errorf("list %d: %w", listID, ErrEmptyList)
	}

	orderRes, err := tx.Exec(
		`INSERT INTO orders (user_id, status) VALUES (?, ?)`,
		userID, model.OrderPending,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	orderID, err := orderRes.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO order_details (order_id, product_id, quantity, unit_price, subtotal)
			SELECT ?, sli.product_id, sli.quantity, p.unit_price, ROUND(p.unit_price * sli.quantity, 2)
			FROM shopping_list_items sli
			JOIN products p ON sli.product_id = p.id
			WHERE sli.list_id = ?`,
		orderID, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("copy list items: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE orders SET total_amount = ROUND((SELECT COALESCE(SUM(subtotal), 0) FROM order_details WHERE order_id = ?), 2), status = ? WHERE id = ?`,
		orderID, model.OrderCompleted, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("finalize order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return NewOrderStore(s.db).Get(orderID)
}

// AddLowStockItems adds every low-stock inventory product to the user's most
// recent active list, creating a "Restock List" when none exists. Quantities
// top the item back up one past its minimum (min - have + 1) and merge into
// any existing row for the same product. When a product is low in several
// inventory batches, each batch contributes its own top-up and the list row
// accumulates the sum. Returns the list touched and the number of distinct
// low-stock products; a fully stocked inventory is a no-op.
func (s *ShoppingListStore) AddLowStockItems(userID int64) (*model.ShoppingList, int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var lowStock int
	err = tx.QueryRow(
		`SELECT COUNT(DISTINCT product_id) FROM inventory WHERE user_id = ? AND quantity > 0 AND quantity <= min_quantity`,
		userID,
	).Scan(&lowStock)
	if err != nil {
		return nil, 0, fmt.Errorf("count low stock: %w", err)
	}
	if lowStock == 0 {
		return nil, 0, nil
	}

	var listID int64
	err = tx.QueryRow(
		`SELECT id FROM shopping_lists WHERE user_id = ? AND is_active = 1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		userID,
	).Scan(&listID)
	if err == sql.ErrNoRows {
		result, err := tx.Exec(`INSERT INTO shopping_lists (user_id, name) VALUES (?, ?)`, userID, "Restock List")
		if isConstraintErr(err) {
			return nil, 0, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		if err != nil {
			return nil, 0, fmt.Errorf("insert restock list: %w", err)
		}
		listID, err = result.LastInsertId()
		if err != nil {
			return nil, 0, fmt.Errorf("last insert id: %w", err)
		}
	} else if err != nil {
		return nil, 0, fmt.Errorf("find active list: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO shopping_list_items (list_id, product_id, quantity)
			SELECT ?, product_id, min_quantity - quantity + 1
			FROM inventory
			WHERE user_id = ? AND quantity > 0 AND quantity <= min_quantity
			ON CONFLICT (list_id, product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		listID, userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("upsert restock items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit: %w", err)
	}

	list, err := s.Get(listID)
	if err != nil {
		return nil, 0, err
	}
	return list, lowStock, nil
}
