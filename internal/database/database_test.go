package database

import "testing"

func TestOpenRunsMigrations(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Cascade deletes and restrict guards depend on this pragma reaching
	// every connection through the DSN.
	var fk int
	if err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk); err != nil {
		t.Fatalf("read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	// A migrated database has the full schema.
	for _, table := range []string{"users", "categories", "products", "orders", "order_details", "shopping_lists", "shopping_list_items", "inventory"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing: %v", table, err)
		}
	}
}

func TestSeedIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("re-seed: %v", err)
	}

	var categories, products int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&products); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if categories != 10 {
		t.Errorf("categories = %d, want 10", categories)
	}
	if products != 50 {
		t.Errorf("products = %d, want 50", products)
	}

	var username string
	if err := db.QueryRow(`SELECT username FROM users WHERE username = 'demo_user'`).Scan(&username); err != nil {
		t.Errorf("demo user missing: %v", err)
	}
}
