package catalog

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		// Exact matches.
		{"Milk", "Dairy"},
		{"eggs", "Dairy"},
		{"Chicken", "Meat & Poultry"},
		{"toilet paper", "Household"},
		{"Shampoo", "Personal Care"},

		// Substring matches.
		{"Whole Milk", "Dairy"},
		{"Almond Milk", "Beverages"},
		{"Frozen Broccoli", "Frozen Foods"},
		{"Chicken Breast", "Meat & Poultry"},
		{"Sourdough Bread", "Bakery"},
		{"Mixed Berries", "Fruits"},
		{"Potato Chips", "Snacks"},
		{"Dishwasher Detergent", "Household"},

		// Whitespace and case are ignored.
		{"  BANANAS  ", "Fruits"},

		// No keyword hit falls back.
		{"Mystery Item", Fallback},
		{"", Fallback},
	}

	for _, tt := range tests {
		if got := Categorize(tt.name); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
