package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Seed inserts sample catalog data and a demo user. It is idempotent: if any
// categories already exist it does nothing.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	categoryIDs := make(map[string]int64, len(seedCategories))
	for _, c := range seedCategories {
		result, err := tx.Exec(`INSERT INTO categories (name, description) VALUES (?, ?)`, c.name, c.description)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", c.name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		categoryIDs[c.name] = id
	}

	for _, p := range seedProducts {
		_, err := tx.Exec(
			`INSERT INTO products (name, category_id, brand, unit_price, unit_measure) VALUES (?, ?, ?, ?, ?)`,
			p.name, categoryIDs[p.category], p.brand, p.price, p.measure,
		)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		"demo_user", "demo@example.com", string(hash),
	)
	if err != nil {
		return fmt.Errorf("seed demo user: %w", err)
	}

	return tx.Commit()
}

var seedCategories = []struct {
	name        string
	description string
}{
	{"Dairy", "Milk, cheese, yogurt, and other dairy products"},
	{"Fruits", "Fresh fruits and berries"},
	{"Vegetables", "Fresh vegetables and greens"},
	{"Meat & Poultry", "Fresh and frozen meat products"},
	{"Beverages", "Drinks, juices, and sodas"},
	{"Bakery", "Bread, pastries, and baked goods"},
	{"Frozen Foods", "Frozen meals and ingredients"},
	{"Snacks", "Chips, crackers, and snack items"},
	{"Household", "Cleaning supplies and household items"},
	{"Personal Care", "Hygiene and personal care products"},
}

var seedProducts = []struct {
	name     string
	category string
	brand    string
	price    float64
	measure  string
}{
	{"Whole Milk", "Dairy", "Organic Valley", 4.99, "gallon"},
	{"Greek Yogurt", "Dairy", "Chobani", 5.49, "pack"},
	{"Cheddar Cheese", "Dairy", "Tillamook", 6.99, "lb"},
	{"Butter", "Dairy", "Kerrygold", 5.49, "pack"},
	{"Eggs", "Dairy", "Happy Egg", 5.99, "dozen"},
	{"Bananas", "Fruits", "Dole", 0.59, "lb"},
	{"Apples", "Fruits", "Honeycrisp", 2.99, "lb"},
	{"Strawberries", "Fruits", "Driscoll", 4.99, "pack"},
	{"Oranges", "Fruits", "Sunkist", 1.29, "each"},
	{"Grapes", "Fruits", "Red Globe", 3.99, "lb"},
	{"Broccoli", "Vegetables", "Fresh", 2.49, "bunch"},
	{"Carrots", "Vegetables", "Bolthouse", 2.99, "bag"},
	{"Spinach", "Vegetables", "Earthbound", 4.49, "bag"},
	{"Tomatoes", "Vegetables", "Roma", 1.99, "lb"},
	{"Potatoes", "Vegetables", "Russet", 4.99, "bag"},
	{"Chicken Breast", "Meat & Poultry", "Perdue", 8.99, "lb"},
	{"Ground Beef", "Meat & Poultry", "Angus", 7.99, "lb"},
	{"Salmon Fillet", "Meat & Poultry", "Wild Caught", 12.99, "lb"},
	{"Bacon", "Meat & Poultry", "Oscar Mayer", 6.99, "pack"},
	{"Turkey Breast", "Meat & Poultry", "Butterball", 7.49, "lb"},
	{"Orange Juice", "Beverages", "Tropicana", 4.99, "bottle"},
	{"Coffee", "Beverages", "Starbucks", 9.99, "bag"},
	{"Green Tea", "Beverages", "Bigelow", 4.49, "box"},
	{"Sparkling Water", "Beverages", "LaCroix", 5.99, "pack"},
	{"Almond Milk", "Beverages", "Califia", 4.99, "carton"},
	{"Whole Wheat Bread", "Bakery", "Dave's Killer", 5.49, "loaf"},
	{"Bagels", "Bakery", "Thomas", 4.29, "pack"},
	{"Croissants", "Bakery", "La Boulangerie", 4.99, "pack"},
	{"Tortillas", "Bakery", "Mission", 3.49, "pack"},
	{"English Muffins", "Bakery", "Thomas", 3.99, "pack"},
	{"Ice Cream", "Frozen Foods", "Ben & Jerry's", 5.99, "pint"},
	{"Frozen Pizza", "Frozen Foods", "DiGiorno", 7.49, "each"},
	{"Frozen Vegetables", "Frozen Foods", "Birds Eye", 2.99, "bag"},
	{"Frozen Berries", "Frozen Foods", "Dole", 4.99, "bag"},
	{"Fish Sticks", "Frozen Foods", "Gorton's", 5.99, "box"},
	{"Potato Chips", "Snacks", "Lay's", 4.29, "bag"},
	{"Pretzels", "Snacks", "Snyder's", 3.99, "bag"},
	{"Trail Mix", "Snacks", "Planters", 6.99, "container"},
	{"Granola Bars", "Snacks", "Nature Valley", 4.49, "box"},
	{"Crackers", "Snacks", "Ritz", 3.99, "box"},
	{"Paper Towels", "Household", "Bounty", 12.99, "pack"},
	{"Dish Soap", "Household", "Dawn", 3.99, "bottle"},
	{"Laundry Detergent", "Household", "Tide", 14.99, "bottle"},
	{"Trash Bags", "Household", "Glad", 9.99, "box"},
	{"All-Purpose Cleaner", "Household", "Method", 4.99, "bottle"},
	{"Shampoo", "Personal Care", "Pantene", 6.99, "bottle"},
	{"Toothpaste", "Personal Care", "Colgate", 4.49, "tube"},
	{"Body Wash", "Personal Care", "Dove", 5.99, "bottle"},
	{"Deodorant", "Personal Care", "Old Spice", 6.49, "stick"},
	{"Hand Soap", "Personal Care", "Softsoap", 3.99, "bottle"},
}
