package store

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/database"
	"github.com/mkaspar/larder/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, username string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(username, username+"@example.com", "secret123")
	if err != nil {
		t.Fatalf("create test user %q: %v", username, err)
	}
	return u
}

func createTestCategory(t *testing.T, db *sql.DB, name string) *model.Category {
	t.Helper()
	c, err := NewCatalogStore(db).CreateCategory(name, "")
	if err != nil {
		t.Fatalf("create test category %q: %v", name, err)
	}
	return c
}

func createTestProduct(t *testing.T, db *sql.DB, name string, categoryID int64, price string) *model.Product {
	t.Helper()
	p, err := NewCatalogStore(db).CreateProduct(name, categoryID, decimal.RequireFromString(price), "", "unit")
	if err != nil {
		t.Fatalf("create test product %q: %v", name, err)
	}
	return p
}
