package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	salesRepo "inventory.GO/model/repository/sales"
)

const dateLayout = "2006-01-02"

// maxRangeDays bounds a single report request.
const maxRangeDays = 366

var ErrInvalidRange = errors.New("invalid date range")

// DailyTotal aggregates the sales journal for one UTC day.
type DailyTotal struct {
	Date     string          `json:"date"`
	Quantity float64         `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Lines    int             `json:"lines"`
}

// ItemTotal aggregates the sales journal for one item over a range.
type ItemTotal struct {
	ItemID   string          `json:"item_id"`
	Quantity float64         `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type Service struct {
	sales *salesRepo.SalesRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{sales: salesRepo.NewSalesRepository(db)}
}

// ParseRange reads inclusive YYYY-MM-DD bounds. Empty values default to the 30
// days ending today. Ranges longer than maxRangeDays are refused.
func ParseRange(startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	today := now.UTC().Truncate(24 * time.Hour)
	end := today
	if endDate != "" {
		t, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	start := end.AddDate(0, 0, -29)
	if startDate != "" {
		t, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date is before start date", ErrInvalidRange)
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: more than %d days", ErrInvalidRange, maxRangeDays)
	}
	return start, end, nil
}

// DailyTotals returns one row per day in [start, end] inclusive, zero-filled.
func (s *Service) DailyTotals(start, end time.Time) ([]DailyTotal, error) {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	records, err := s.sales.ListBetween(start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	var days []DailyTotal
	index := make(map[string]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		index[key] = len(days)
		days = append(days, DailyTotal{Date: key, Revenue: decimal.Zero})
	}
	for _, r := range records {
		i, ok := index[r.Date.UTC().Format(dateLayout)]
		if !ok {
			continue
		}
		days[i].Quantity += r.QuantitySold
		days[i].Revenue = days[i].Revenue.Add(r.TotalMoney)
		days[i].Lines++
	}
	return days, nil
}

// ItemTotals returns per-item totals in [start, end] inclusive, in first-sold order.
func (s *Service) ItemTotals(start, end time.Time) ([]ItemTotal, error) {
	start = start.UTC().Truncate(24 * time.Hour)
	end = end.UTC().Truncate(24 * time.Hour)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	records, err := s.sales.ListBetween(start, end.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	var out []ItemTotal
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.ItemID]
		if !ok {
			i = len(out)
			index[r.ItemID] = i
			out = append(out, ItemTotal{ItemID: r.ItemID, Revenue: decimal.Zero})
		}
		out[i].Quantity += r.QuantitySold
		out[i].Revenue = out[i].Revenue.Add(r.TotalMoney)
	}
	return out, nil
}
