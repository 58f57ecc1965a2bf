package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/model"
)

const dateLayout = "2006-01-02"

type InventoryStore struct {
	db *sql.DB
}

func NewInventoryStore(db *sql.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

func scanInventoryEntry(scanner interface{ Scan(...any) error }) (*model.InventoryEntry, error) {
	var e model.InventoryEntry
	var expiry sql.NullString
	var price float64
	err := scanner.Scan(
		&e.ID, &e.UserID, &e.ProductID, &e.Quantity, &e.MinQuantity,
		&expiry, &e.Location, &e.Notes, &e.CreatedAt,
		&e.ProductName, &e.Brand, &price, &e.UnitMeasure, &e.CategoryName,
	)
	if err != nil {
		return nil, err
	}
	if expiry.Valid {
		d, err := time.Parse(dateLayout, expiry.String)
		if err != nil {
			return nil, fmt.Errorf("parse expiry date %q: %w", expiry.String, err)
		}
		e.ExpiryDate = &d
	}
	e.UnitPrice = decimal.NewFromFloat(price)
	return &e, nil
}

const inventoryCols = `i.id, i.user_id, i.product_id, i.quantity, i.min_quantity, i.expiry_date, i.location, i.notes, i.created_at, p.name, p.brand, p.unit_price, p.unit_measure, c.name`

const inventoryJoin = ` FROM inventory i
		JOIN products p ON i.product_id = p.id
		JOIN categories c ON p.category_id = c.id`

func expiryArg(expiry *time.Time) any {
	if expiry == nil {
		return nil
	}
	return expiry.Format(dateLayout)
}

// Add inserts a new inventory row. Unlike shopping lists there is no merge:
// each call is its own batch, and duplicate product/location rows are allowed.
func (s *InventoryStore) Add(userID, productID int64, quantity int, expiry *time.Time, location string, minQuantity int, notes string) (*model.InventoryEntry, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrInvalidArgument)
	}
	if minQuantity < 0 {
		return nil, fmt.Errorf("min quantity must not be negative: %w", ErrInvalidArgument)
	}
	if location == "" {
		location = model.LocationPantry
	}

	result, err := s.db.Exec(
		`INSERT INTO inventory (user_id, product_id, quantity, min_quantity, expiry_date, location, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, productID, quantity, minQuantity, expiryArg(expiry), location, notes,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("user %d or product %d: %w", userID, productID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert inventory item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.Get(id)
}

func (s *InventoryStore) Get(id int64) (*model.InventoryEntry, error) {
	row := s.db.QueryRow(`SELECT `+inventoryCols+inventoryJoin+` WHERE i.id = ?`, id)
	e, err := scanInventoryEntry(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return e, nil
}

// Update overwrites every editable field of the row.
func (s *InventoryStore) Update(id int64, quantity, minQuantity int, expiry *time.Time, location, notes string) (*model.InventoryEntry, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative: %w", ErrInvalidArgument)
	}
	if minQuantity < 0 {
		return nil, fmt.Errorf("min quantity must not be negative: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`UPDATE inventory SET quantity = ?, min_quantity = ?, expiry_date = ?, location = ?, notes = ? WHERE id = ?`,
		quantity, minQuantity, expiryArg(expiry), location, notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	return s.Get(id)
}

// Use decrements the quantity by amount, clamped at zero. Over-consumption is
// clamped, not rejected; the row stays visible as out-of-stock at zero.
func (s *InventoryStore) Use(id int64, amount int) (*model.InventoryEntry, error) {
	if amount < 1 {
		return nil, fmt.Errorf("amount must be at least 1: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`UPDATE inventory SET quantity = MAX(quantity - ?, 0) WHERE id = ?`,
		amount, id,
	)
	if err != nil {
		return nil, fmt.Errorf("use inventory item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	return s.Get(id)
}

func (s *InventoryStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("inventory item %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *InventoryStore) listEntries(query string, args ...any) ([]model.InventoryEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()

	var entries []model.InventoryEntry
	for rows.Next() {
		e, err := scanInventoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *InventoryStore) ListForUser(userID int64) ([]model.InventoryEntry, error) {
	return s.listEntries(
		`SELECT `+inventoryCols+inventoryJoin+` WHERE i.user_id = ? ORDER BY i.location ASC, p.name ASC, i.id ASC`,
		userID,
	)
}

// Expired returns items whose expiry date is strictly before today, with how
// many days ago they expired (always >= 1). An item expiring today is not
// expired; today belongs to the non-expired side of the boundary. Today is
// taken in UTC so the boundary agrees with CURRENT_TIMESTAMP columns.
func (s *InventoryStore) Expired(userID int64) ([]model.ExpiredItem, error) {
	today := time.Now().UTC().Format(dateLayout)
	rows, err := s.db.Query(
		`SELECT `+inventoryCols+`, CAST(julianday(?) - julianday(i.expiry_date) AS INTEGER)`+
			inventoryJoin+
			` WHERE i.user_id = ? AND i.expiry_date IS NOT NULL AND i.expiry_date < ?
			ORDER BY i.expiry_date ASC, i.id ASC`,
		today, userID, today,
	)
	if err != nil {
		return nil, fmt.Errorf("list expired: %w", err)
	}
	defer rows.Close()

	var items []model.ExpiredItem
	for rows.Next() {
		var it model.ExpiredItem
		var expiry sql.NullString
		var price float64
		err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.MinQuantity,
			&expiry, &it.Location, &it.Notes, &it.CreatedAt,
			&it.ProductName, &it.Brand, &price, &it.UnitMeasure, &it.CategoryName,
			&it.DaysExpired,
		)
		if err != nil {
			return nil, fmt.Errorf("scan expired item: %w", err)
		}
		if expiry.Valid {
			d, err := time.Parse(dateLayout, expiry.String)
			if err != nil {
				return nil, fmt.Errorf("parse expiry date %q: %w", expiry.String, err)
			}
			it.ExpiryDate = &d
		}
		it.UnitPrice = decimal.NewFromFloat(price)
		items = append(items, it)
	}
	return items, rows.Err()
}

// ExpiringSoon returns items expiring within the next `days` days, today
// included (DaysUntilExpiry 0 means it expires today).
func (s *InventoryStore) ExpiringSoon(userID int64, days int) ([]model.ExpiringItem, error) {
	now := time.Now().UTC()
	today := now.Format(dateLayout)
	until := now.AddDate(0, 0, days).Format(dateLayout)

	rows, err := s.db.Query(
		`SELECT `+inventoryCols+`, CAST(julianday(i.expiry_date) - julianday(?) AS INTEGER)`+
			inventoryJoin+
			` WHERE i.user_id = ? AND i.expiry_date IS NOT NULL AND i.expiry_date >= ? AND i.expiry_date <= ?
			ORDER BY i.expiry_date ASC, i.id ASC`,
		today, userID, today, until,
	)
	if err != nil {
		return nil, fmt.Errorf("list expiring soon: %w", err)
	}
	defer rows.Close()

	var items []model.ExpiringItem
	for rows.Next() {
		var it model.ExpiringItem
		var expiry sql.NullString
		var price float64
		err := rows.Scan(
			&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.MinQuantity,
			&expiry, &it.Location, &it.Notes, &it.CreatedAt,
			&it.ProductName, &it.Brand, &price, &it.UnitMeasure, &it.CategoryName,
			&it.DaysUntilExpiry,
		)
		if err != nil {
			return nil, fmt.Errorf("scan expiring item: %w", err)
		}
		if expiry.Valid {
			d, err := time.Parse(dateLayout, expiry.String)
			if err != nil {
				return nil, fmt.Errorf("parse expiry date %q: %w", expiry.String, err)
			}
			it.ExpiryDate = &d
		}
		it.UnitPrice = decimal.NewFromFloat(price)
		items = append(items, it)
	}
	return items, rows.Err()
}

// LowStock returns items above zero but at or below their minimum threshold.
func (s *InventoryStore) LowStock(userID int64) ([]model.InventoryEntry, error) {
	return s.listEntries(
		`SELECT `+inventoryCols+inventoryJoin+
			` WHERE i.user_id = ? AND i.quantity > 0 AND i.quantity <= i.min_quantity
			ORDER BY p.name ASC, i.id ASC`,
		userID,
	)
}

// OutOfStock returns items whose quantity reached zero. Zero rows are kept,
// never auto-deleted, so they stay visible here until replenished or removed.
func (s *InventoryStore) OutOfStock(userID int64) ([]model.InventoryEntry, error) {
	return s.listEntries(
		`SELECT `+inventoryCols+inventoryJoin+
			` WHERE i.user_id = ? AND i.quantity = 0
			ORDER BY p.name ASC, i.id ASC`,
		userID,
	)
}

// Summary counts the alert buckets in one pass. Expired and expiring-soon are
// disjoint (today counts as expiring-soon); low-stock and out-of-stock are
// disjoint by definition.
func (s *InventoryStore) Summary(userID int64, days int) (*model.InventorySummary, error) {
	now := time.Now().UTC()
	today := now.Format(dateLayout)
	until := now.AddDate(0, 0, days).Format(dateLayout)

	var sum model.InventorySummary
	err := s.db.QueryRow(
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN expiry_date IS NOT NULL AND expiry_date < ? THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN quantity > 0 AND quantity <= min_quantity THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN quantity = 0 THEN 1 ELSE 0 END), 0)
		FROM inventory WHERE user_id = ?`,
		today, until, today, userID,
	).Scan(&sum.TotalItems, &sum.ExpiringSoon, &sum.Expired, &sum.LowStock, &sum.OutOfStock)
	if err != nil {
		return nil, fmt.Errorf("inventory summary: %w", err)
	}
	return &sum, nil
}

// ByLocation groups the user's inventory rows by storage location.
func (s *InventoryStore) ByLocation(userID int64) ([]model.LocationCount, error) {
	rows, err := s.db.Query(
		`SELECT location, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM inventory WHERE user_id = ?
		GROUP BY location ORDER BY location ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory by location: %w", err)
	}
	defer rows.Close()

	var counts []model.LocationCount
	for rows.Next() {
		var c model.LocationCount
		if err := rows.Scan(&c.Location, &c.Items, &c.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan location count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ByCategory groups the user's inventory rows by product category.
func (s *InventoryStore) ByCategory(userID int64) ([]model.CategoryCount, error) {
	rows, err := s.db.Query(
		`SELECT c.name, COUNT(*)
		FROM inventory i
		JOIN products p ON i.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE i.user_id = ?
		GROUP BY c.id ORDER BY c.name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("inventory by category: %w", err)
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.CategoryName, &c.Items); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
