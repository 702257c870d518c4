package report

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	salesEntity "inventory.GO/model/entity/sales"
	salesRepo "inventory.GO/model/repository/sales"
	"inventory.GO/model/modeltest"
)

func TestDailyTotals(t *testing.T) {
	db := modeltest.OpenDB(t)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	err := salesRepo.NewSalesRepository(db).Append([]salesEntity.SalesRecord{
		{ItemID: "A", QuantitySold: 2, TotalMoney: decimal.New(1250, -2), Date: day.Add(9 * time.Hour)},
		{ItemID: "B", QuantitySold: 1, TotalMoney: decimal.New(199, -2), Date: day.Add(23 * time.Hour)},
		{ItemID: "A", QuantitySold: 1, TotalMoney: decimal.New(625, -2), Date: day.AddDate(0, 0, 2)},
		{ItemID: "A", QuantitySold: 5, TotalMoney: decimal.New(100, 0), Date: day.AddDate(0, 0, 5)},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	days, err := NewService(db).DailyTotals(day, day.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("DailyTotals: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("days = %d, want 3", len(days))
	}
	if days[0].Date != "2025-03-10" || days[0].Quantity != 3 || !days[0].Revenue.Equal(decimal.RequireFromString("14.49")) || days[0].Lines != 2 {
		t.Errorf("day 0 = %+v", days[0])
	}
	if days[1].Quantity != 0 || !days[1].Revenue.IsZero() {
		t.Errorf("day 1 = %+v, want zero-filled", days[1])
	}
	if !days[2].Revenue.Equal(decimal.RequireFromString("6.25")) {
		t.Errorf("day 2 revenue = %s, want 6.25", days[2].Revenue)
	}

	items, err := NewService(db).ItemTotals(day, day.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("ItemTotals: %v", err)
	}
	if len(items) != 2 || items[0].ItemID != "A" || items[0].Quantity != 3 || !items[0].Revenue.Equal(decimal.RequireFromString("18.75")) {
		t.Errorf("ItemTotals = %+v", items)
	}
}

func TestParseRange(t *testing.T) {
	now := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)
	start, end, err := ParseRange("", "", now)
	if err != nil {
		t.Fatalf("ParseRange: %v", err)
	}
	if end.Format(dateLayout) != "2025-06-15" || start.Format(dateLayout) != "2025-05-17" {
		t.Errorf("default range = %s..%s", start.Format(dateLayout), end.Format(dateLayout))
	}

	if _, _, err := ParseRange("2025-06-10", "2025-06-01", now); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("reversed range err = %v, want ErrInvalidRange", err)
	}
	if _, _, err := ParseRange("2023-01-01", "2025-06-01", now); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("overlong range err = %v, want ErrInvalidRange", err)
	}
	start, end, err = ParseRange("2024-06-01", "2025-06-01", now)
	if err != nil || end.Sub(start) != 365*24*time.Hour {
		t.Errorf("one-year range = %s..%s, %v", start.Format(dateLayout), end.Format(dateLayout), err)
	}
	if _, _, err := ParseRange("June", "", now); err == nil {
		t.Error("malformed date: want error")
	}
}
