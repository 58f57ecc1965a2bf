package catalog

import "strings"

// Fallback is returned when no keyword matches the item name.
const Fallback = "Other"

// Categorize returns the catalog category name for the given product name.
// Matching is case-insensitive: exact match first, then substring match with
// longer, more specific keywords tried before shorter ones. Falls back to
// Fallback when nothing matches.
func Categorize(productName string) string {
	name := strings.ToLower(strings.TrimSpace(productName))
	if name == "" {
		return Fallback
	}

	if cat, ok := exactMatch[name]; ok {
		return cat
	}

	for _, entry := range substringMatches {
		if strings.Contains(name, entry.keyword) {
			return entry.category
		}
	}

	return Fallback
}

var exactMatch = map[string]string{
	// Fruits
	"apple":        "Fruits",
	"apples":       "Fruits",
	"banana":       "Fruits",
	"bananas":      "Fruits",
	"orange":       "Fruits",
	"oranges":      "Fruits",
	"lemon":        "Fruits",
	"lemons":       "Fruits",
	"lime":         "Fruits",
	"limes":        "Fruits",
	"grapes":       "Fruits",
	"strawberries": "Fruits",
	"blueberries":  "Fruits",
	"raspberries":  "Fruits",
	"watermelon":   "Fruits",
	"pineapple":    "Fruits",
	"mango":        "Fruits",
	"peach":        "Fruits",
	"peaches":      "Fruits",
	"pear":         "Fruits",
	"pears":        "Fruits",

	// Vegetables
	"tomato":      "Vegetables",
	"tomatoes":    "Vegetables",
	"potato":      "Vegetables",
	"potatoes":    "Vegetables",
	"onion":       "Vegetables",
	"onions":      "Vegetables",
	"garlic":      "Vegetables",
	"lettuce":     "Vegetables",
	"spinach":     "Vegetables",
	"kale":        "Vegetables",
	"broccoli":    "Vegetables",
	"carrots":     "Vegetables",
	"celery":      "Vegetables",
	"cucumber":    "Vegetables",
	"cucumbers":   "Vegetables",
	"peppers":     "Vegetables",
	"mushrooms":   "Vegetables",
	"corn":        "Vegetables",
	"zucchini":    "Vegetables",
	"asparagus":   "Vegetables",
	"green beans": "Vegetables",
	"avocado":     "Vegetables",
	"avocados":    "Vegetables",

	// Dairy
	"milk":           "Dairy",
	"eggs":           "Dairy",
	"butter":         "Dairy",
	"cheese":         "Dairy",
	"yogurt":         "Dairy",
	"cream cheese":   "Dairy",
	"sour cream":     "Dairy",
	"heavy cream":    "Dairy",
	"half and half":  "Dairy",
	"cottage cheese": "Dairy",

	// Meat & Poultry
	"chicken": "Meat & Poultry",
	"beef":    "Meat & Poultry",
	"pork":    "Meat & Poultry",
	"turkey":  "Meat & Poultry",
	"bacon":   "Meat & Poultry",
	"sausage": "Meat & Poultry",
	"ham":     "Meat & Poultry",
	"salmon":  "Meat & Poultry",
	"shrimp":  "Meat & Poultry",
	"tuna":    "Meat & Poultry",

	// Bakery
	"bread":           "Bakery",
	"bagels":          "Bakery",
	"croissants":      "Bakery",
	"tortillas":       "Bakery",
	"english muffins": "Bakery",
	"buns":            "Bakery",
	"rolls":           "Bakery",

	// Beverages
	"coffee":          "Beverages",
	"tea":             "Beverages",
	"juice":           "Beverages",
	"soda":            "Beverages",
	"sparkling water": "Beverages",
	"almond milk":     "Beverages",
	"oat milk":        "Beverages",
	"beer":            "Beverages",
	"wine":            "Beverages",

	// Frozen Foods
	"ice cream":    "Frozen Foods",
	"frozen pizza": "Frozen Foods",
	"fish sticks":  "Frozen Foods",

	// Snacks
	"chips":        "Snacks",
	"pretzels":     "Snacks",
	"crackers":     "Snacks",
	"trail mix":    "Snacks",
	"granola bars": "Snacks",
	"popcorn":      "Snacks",
	"cookies":      "Snacks",

	// Household
	"paper towels":      "Household",
	"toilet paper":      "Household",
	"dish soap":         "Household",
	"laundry detergent": "Household",
	"trash bags":        "Household",
	"sponges":           "Household",

	// Personal Care
	"shampoo":     "Personal Care",
	"conditioner": "Personal Care",
	"toothpaste":  "Personal Care",
	"body wash":   "Personal Care",
	"deodorant":   "Personal Care",
	"hand soap":   "Personal Care",
}

// substringMatches are ordered with the more specific keywords first so that
// "frozen broccoli" lands in Frozen Foods, not Vegetables.
var substringMatches = []struct {
	keyword  string
	category string
}{
	{"frozen", "Frozen Foods"},
	{"ice cream", "Frozen Foods"},

	{"chicken", "Meat & Poultry"},
	{"beef", "Meat & Poultry"},
	{"pork", "Meat & Poultry"},
	{"turkey", "Meat & Poultry"},
	{"salmon", "Meat & Poultry"},
	{"fish", "Meat & Poultry"},
	{"steak", "Meat & Poultry"},

	{"almond milk", "Beverages"},
	{"oat milk", "Beverages"},
	{"juice", "Beverages"},
	{"coffee", "Beverages"},
	{"water", "Beverages"},
	{"cola", "Beverages"},

	{"cheese", "Dairy"},
	{"yogurt", "Dairy"},
	{"milk", "Dairy"},
	{"cream", "Dairy"},

	{"bread", "Bakery"},
	{"bagel", "Bakery"},
	{"muffin", "Bakery"},
	{"tortilla", "Bakery"},

	{"berries", "Fruits"},
	{"apple", "Fruits"},
	{"banana", "Fruits"},
	{"melon", "Fruits"},
	{"grape", "Fruits"},

	{"spinach", "Vegetables"},
	{"lettuce", "Vegetables"},
	{"pepper", "Vegetables"},
	{"bean", "Vegetables"},
	{"salad", "Vegetables"},

	{"chip", "Snacks"},
	{"cracker", "Snacks"},
	{"cookie", "Snacks"},
	{"bar", "Snacks"},

	{"detergent", "Household"},
	{"cleaner", "Household"},
	{"soap", "Household"},
	{"towel", "Household"},
	{"bag", "Household"},

	{"shampoo", "Personal Care"},
	{"toothbrush", "Personal Care"},
	{"lotion", "Personal Care"},
	{"razor", "Personal Care"},
}
