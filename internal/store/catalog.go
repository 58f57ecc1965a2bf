package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/catalog"
	"github.com/mkaspar/larder/internal/model"
)

type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// --- Category methods ---

func scanCategory(scanner interface{ Scan(...any) error }) (*model.Category, error) {
	var c model.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, name, description`

func (s *CatalogStore) CreateCategory(name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`INSERT INTO categories (name, description) VALUES (?, ?)`,
		name, description,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetCategory(id)
}

func (s *CatalogStore) GetCategory(id int64) (*model.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CatalogStore) ListCategories() ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *CatalogStore) UpdateCategory(id int64, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		name, description, id,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return s.GetCategory(id)
}

// DeleteCategory refuses to delete a category while products reference it.
func (s *CatalogStore) DeleteCategory(id int64) error {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE category_id = ?`, id).Scan(&count)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %d has %d linked products: %w", id, count, ErrConflict)
	}

	result, err := s.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return nil
}

// --- Product methods ---

func scanProduct(scanner interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	var price float64
	err := scanner.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Brand, &price, &p.UnitMeasure, &p.CategoryName)
	if err != nil {
		return nil, err
	}
	p.UnitPrice = decimal.NewFromFloat(price)
	return &p, nil
}

const productCols = `p.id, p.name, p.category_id, p.brand, p.unit_price, p.unit_measure, c.name`

const productJoin = ` FROM products p JOIN categories c ON p.category_id = c.id`

func (s *CatalogStore) CreateProduct(name string, categoryID int64, unitPrice decimal.Decimal, brand, unitMeasure string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrInvalidArgument)
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price must be positive: %w", ErrInvalidArgument)
	}
	if unitMeasure == "" {
		unitMeasure = "unit"
	}

	result, err := s.db.Exec(
		`INSERT INTO products (name, category_id, brand, unit_price, unit_measure) VALUES (?, ?, ?, ?, ?)`,
		name, categoryID, brand, unitPrice.InexactFloat64(), unitMeasure,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetProduct(id)
}

func (s *CatalogStore) GetProduct(id int64) (*model.Product, error) {
	row := s.db.QueryRow(`SELECT `+productCols+productJoin+` WHERE p.id = ?`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *CatalogStore) listProducts(query string, args ...any) ([]model.Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *CatalogStore) ListProducts() ([]model.Product, error) {
	return s.listProducts(`SELECT ` + productCols + productJoin + ` ORDER BY c.name ASC, p.name ASC`)
}

func (s *CatalogStore) ListProductsByCategory(categoryID int64) ([]model.Product, error) {
	return s.listProducts(
		`SELECT `+productCols+productJoin+` WHERE p.category_id = ? ORDER BY p.name ASC`,
		categoryID,
	)
}

// SearchProducts matches the term against product name and brand.
func (s *CatalogStore) SearchProducts(term string) ([]model.Product, error) {
	pattern := "%" + term + "%"
	return s.listProducts(
		`SELECT `+productCols+productJoin+` WHERE p.name LIKE ? OR p.brand LIKE ? ORDER BY p.name ASC`,
		pattern, pattern,
	)
}

func (s *CatalogStore) UpdateProduct(id int64, name string, categoryID int64, unitPrice decimal.Decimal, brand, unitMeasure string) (*model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrInvalidArgument)
	}
	if !unitPrice.IsPositive() {
		return nil, fmt.Errorf("unit price must be positive: %w", ErrInvalidArgument)
	}

	result, err := s.db.Exec(
		`UPDATE products SET name = ?, category_id = ?, unit_price = ?, brand = ?, unit_measure = ? WHERE id = ?`,
		name, categoryID, unitPrice.InexactFloat64(), brand, unitMeasure, id,
	)
	if isConstraintErr(err) {
		return nil, fmt.Errorf("category %d: %w", categoryID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return s.GetProduct(id)
}

func (s *CatalogStore) DeleteProduct(id int64) error {
	result, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if isConstraintErr(err) {
		return fmt.Errorf("product %d is referenced by orders or lists: %w", id, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// SuggestCategory guesses the owning category for a free-typed product name.
// The guess only succeeds when a category with the matched name exists.
func (s *CatalogStore) SuggestCategory(productName string) (*model.Category, error) {
	guess := catalog.Categorize(productName)

	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM categories WHERE name = ?`, guess)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category %q: %w", guess, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get suggested category: %w", err)
	}
	return c, nil
}
