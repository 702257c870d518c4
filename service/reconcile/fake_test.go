package reconcile

import (
	"context"
	"iter"
	"sync"
	"time"

	"inventory.GO/service/square"
)

// fakeSource serves canned pages. A non-nil err fails after the items are yielded.
type fakeSource struct {
	mu sync.Mutex

	locations    []square.Location
	locationsErr error
	catalog      []square.CatalogItem
	catalogErr   error
	orders       []square.Order
	ordersErr    error

	locationCalls int
	searches      []searchCall
	onSearch      func()
}

type searchCall struct {
	locationID string
	start, end time.Time
}

func (f *fakeSource) Locations(context.Context) ([]square.Location, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locationCalls++
	return f.locations, f.locationsErr
}

func (f *fakeSource) CatalogItems(context.Context) iter.Seq2[square.CatalogItem, error] {
	return seq(f.catalog, f.catalogErr)
}

func (f *fakeSource) SearchOrders(_ context.Context, locationID string, start, end time.Time) iter.Seq2[square.Order, error] {
	f.mu.Lock()
	f.searches = append(f.searches, searchCall{locationID, start, end})
	hook := f.onSearch
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return seq(f.orders, f.ordersErr)
}

func seq[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }
