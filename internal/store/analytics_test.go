package store

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mkaspar/larder/internal/model"
)

// completedOrder creates an order with the given lines, completes it, and
// optionally backdates it (CURRENT_TIMESTAMP always stamps "now").
func completedOrder(t *testing.T, db *sql.DB, userID int64, daysAgo int, lines map[int64]int) *model.Order {
	t.Helper()
	os := NewOrderStore(db)
	o, err := os.Create(userID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	for productID, qty := range lines {
		if _, err := os.AddLineItem(o.ID, productID, qty); err != nil {
			t.Fatalf("add line item: %v", err)
		}
	}
	if _, err := os.Complete(o.ID); err != nil {
		t.Fatalf("complete order: %v", err)
	}
	if daysAgo > 0 {
		_, err := db.Exec(`UPDATE orders SET order_date = datetime('now', ?) WHERE id = ?`,
			fmt.Sprintf("-%d day", daysAgo), o.ID)
		if err != nil {
			t.Fatalf("backdate order: %v", err)
		}
	}
	got, err := os.Get(o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	return got
}

func TestTotalSpendingCompletedOnly(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	os := NewOrderStore(db)
	u := createTestUser(t, db, "alice")
	c := createTestCategory(t, db, "Dairy")
	milk := createTestProduct(t, db, "Milk", c.ID, "3.00")
	eggs := createTestProduct(t, db, "Eggs", c.ID, "5.00")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 2}) // 6.00
	completedOrder(t, db, u.ID, 0, map[int64]int{eggs.ID: 1}) // 5.00

	// A pending and a cancelled order must not count.
	pending, _ := os.Create(u.ID)
	os.AddLineItem(pending.ID, milk.ID, 10)
	cancelled, _ := os.Create(u.ID)
	os.AddLineItem(cancelled.ID, eggs.ID, 10)
	os.Cancel(cancelled.ID)

	total, err := as.TotalSpending(u.ID)
	if err != nil {
		t.Fatalf("total spending: %v", err)
	}
	if !total.TotalSpent.Equal(decimal.RequireFromString("11.00")) {
		t.Errorf("total = %s, want 11.00", total.TotalSpent)
	}
	if total.OrderCount != 2 {
		t.Errorf("order count = %d, want 2", total.OrderCount)
	}
}

func TestTotalSpendingEmpty(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")

	total, err := as.TotalSpending(u.ID)
	if err != nil {
		t.Fatalf("total spending: %v", err)
	}
	if !total.TotalSpent.IsZero() || total.OrderCount != 0 {
		t.Errorf("total = %s/%d, want 0/0", total.TotalSpent, total.OrderCount)
	}
}

func TestSpendingByCategory(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	bakery := createTestCategory(t, db, "Bakery")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")
	bread := createTestProduct(t, db, "Bread", bakery.ID, "5.50")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 1, bread.ID: 2}) // dairy 3.00, bakery 11.00

	spends, err := as.SpendingByCategory(u.ID, nil, nil)
	if err != nil {
		t.Fatalf("spending by category: %v", err)
	}
	if len(spends) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(spends))
	}
	if spends[0].CategoryName != "Bakery" || !spends[0].TotalSpent.Equal(decimal.RequireFromString("11.00")) {
		t.Errorf("spends[0] = %s %s, want Bakery 11.00", spends[0].CategoryName, spends[0].TotalSpent)
	}
	if spends[1].CategoryName != "Dairy" || !spends[1].TotalSpent.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("spends[1] = %s %s, want Dairy 3.00", spends[1].CategoryName, spends[1].TotalSpent)
	}
}

func TestSpendingByCategoryDateRange(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 1})  // today
	completedOrder(t, db, u.ID, 10, map[int64]int{milk.ID: 1}) // outside range

	start := time.Now().UTC().AddDate(0, 0, -3)
	end := time.Now().UTC()
	spends, err := as.SpendingByCategory(u.ID, &start, &end)
	if err != nil {
		t.Fatalf("spending by category: %v", err)
	}
	if len(spends) != 1 || !spends[0].TotalSpent.Equal(decimal.RequireFromString("3.00")) {
		t.Errorf("ranged spends = %+v, want Dairy 3.00 only", spends)
	}
}

func TestMonthlySpending(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 1})
	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 2})

	months, err := as.MonthlySpending(u.ID, 0)
	if err != nil {
		t.Fatalf("monthly spending: %v", err)
	}
	if len(months) != 1 {
		t.Fatalf("expected 1 month, got %d", len(months))
	}
	thisMonth := time.Now().UTC().Format("2006-01")
	if months[0].Month != thisMonth {
		t.Errorf("month = %q, want %q", months[0].Month, thisMonth)
	}
	if !months[0].TotalSpent.Equal(decimal.RequireFromString("9.00")) || months[0].OrderCount != 2 {
		t.Errorf("month total = %s/%d, want 9.00/2", months[0].TotalSpent, months[0].OrderCount)
	}

	// A year with no orders filters everything out.
	none, err := as.MonthlySpending(u.ID, 1999)
	if err != nil {
		t.Fatalf("monthly spending 1999: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no months for 1999, got %d", len(none))
	}
}

func TestWeeklySpendingWindow(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 1}) // today: in
	completedOrder(t, db, u.ID, 6, map[int64]int{milk.ID: 1}) // edge of window: in
	completedOrder(t, db, u.ID, 7, map[int64]int{milk.ID: 1}) // out

	days, err := as.WeeklySpending(u.ID)
	if err != nil {
		t.Fatalf("weekly spending: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d: %+v", len(days), days)
	}
	// Ascending by day: the six-day-old order first.
	if days[0].Day >= days[1].Day {
		t.Errorf("days not ascending: %q then %q", days[0].Day, days[1].Day)
	}
	for _, d := range days {
		if !d.TotalSpent.Equal(decimal.RequireFromString("3.00")) {
			t.Errorf("day %s total = %s, want 3.00", d.Day, d.TotalSpent)
		}
	}
}

func TestTopProducts(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")
	eggs := createTestProduct(t, db, "Eggs", dairy.ID, "5.00")
	cheese := createTestProduct(t, db, "Cheese", dairy.ID, "6.99")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 2, eggs.ID: 5})
	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 3, cheese.ID: 5})

	ranks, err := as.TopProducts(u.ID, 0)
	if err != nil {
		t.Fatalf("top products: %v", err)
	}
	if len(ranks) != 3 {
		t.Fatalf("expected 3 ranks, got %d", len(ranks))
	}
	// Milk: qty 5 across 2 orders. Eggs and Cheese tie at 5; lower id wins.
	if ranks[0].ProductName != "Milk" || ranks[0].TotalQuantity != 5 || ranks[0].OrderCount != 2 {
		t.Errorf("ranks[0] = %+v, want Milk qty 5 in 2 orders", ranks[0])
	}
	if ranks[1].ProductID != eggs.ID || ranks[2].ProductID != cheese.ID {
		t.Errorf("tie order = [%d, %d], want [%d, %d]", ranks[1].ProductID, ranks[2].ProductID, eggs.ID, cheese.ID)
	}

	top1, err := as.TopProducts(u.ID, 1)
	if err != nil {
		t.Fatalf("top products limit 1: %v", err)
	}
	if len(top1) != 1 || top1[0].ProductName != "Milk" {
		t.Errorf("top1 = %+v, want just Milk", top1)
	}
}

func TestSuggestedProducts(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	snacks := createTestCategory(t, db, "Snacks")
	milk := createTestProduct(t, db, "Milk", dairy.ID, "3.00")
	eggs := createTestProduct(t, db, "Eggs", dairy.ID, "5.00")
	cheese := createTestProduct(t, db, "Cheese", dairy.ID, "6.99")
	chips := createTestProduct(t, db, "Chips", snacks.ID, "3.49")

	completedOrder(t, db, u.ID, 0, map[int64]int{milk.ID: 1})  // recent: excluded
	completedOrder(t, db, u.ID, 40, map[int64]int{eggs.ID: 1}) // old: eligible again

	suggestions, err := as.SuggestedProducts(u.ID, 5)
	if err != nil {
		t.Fatalf("suggested products: %v", err)
	}

	seen := make(map[int64]bool, len(suggestions))
	for _, p := range suggestions {
		seen[p.ID] = true
		if p.CategoryID != dairy.ID {
			t.Errorf("suggestion %q from category %d, want only purchased categories", p.Name, p.CategoryID)
		}
	}
	if seen[milk.ID] {
		t.Error("recently purchased product must not be suggested")
	}
	if !seen[eggs.ID] {
		t.Error("product purchased 40 days ago should be eligible")
	}
	if !seen[cheese.ID] {
		t.Error("never-purchased product in a favorite category should be eligible")
	}
	if seen[chips.ID] {
		t.Error("product from an unpurchased category must not be suggested")
	}

	one, err := as.SuggestedProducts(u.ID, 1)
	if err != nil {
		t.Fatalf("suggested products limit 1: %v", err)
	}
	if len(one) > 1 {
		t.Errorf("limit 1 returned %d products", len(one))
	}
}

func TestSuggestedProductsNoHistory(t *testing.T) {
	db := openTestDB(t)
	as := NewAnalyticsStore(db)
	u := createTestUser(t, db, "alice")
	dairy := createTestCategory(t, db, "Dairy")
	createTestProduct(t, db, "Milk", dairy.ID, "3.00")

	suggestions, err := as.SuggestedProducts(u.ID, 5)
	if err != nil {
		t.Fatalf("suggested products: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("expected no suggestions without purchase history, got %d", len(suggestions))
	}
}
