package reconcile

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
	salesEntity "inventory.GO/model/entity/sales"
	"inventory.GO/service/square"
)

// ledgerPass holds the ledger rows touched by one window while sales are applied in memory.
type ledgerPass struct {
	items   map[string]*inventoryEntity.InventoryItem
	stock   map[string]decimal.Decimal
	edges   map[string][]inventoryEntity.ItemSubcomponent
	dirty   map[string]struct{}
	records []salesEntity.SalesRecord
	res     *Result
}

// applyWindow depletes stock for every line item of orders, walks the BOM one
// level, journals the sales and advances the checkpoint to the window end.
// It must run inside the pass transaction.
func (e *Engine) applyWindow(tx *gorm.DB, res *Result, orders []square.Order) error {
	// Re-read with a row lock: the window was computed before fetching, and a
	// concurrent pass must either see our advance or wait for it.
	current, err := e.checkpoints.WithTx(tx).Lock()
	if err != nil {
		return fmt.Errorf("read checkpoint: %w", err)
	}
	if !current.Truncate(time.Millisecond).Equal(res.WindowStart) {
		return fmt.Errorf("%w: expected %s, found %s", ErrCheckpointMoved,
			res.WindowStart.Format(time.RFC3339Nano), current.Format(time.RFC3339Nano))
	}

	p, err := e.loadPass(tx, res, orders)
	if err != nil {
		return err
	}
	for _, order := range orders {
		res.Orders++
		for _, li := range order.LineItems {
			res.LineItems++
			p.applyLineItem(order, li)
		}
	}
	for _, w := range res.Warnings {
		e.log.Printf("warning: %s", w)
	}

	items := e.items.WithTx(tx)
	ids := make([]string, 0, len(p.dirty))
	for id := range p.dirty {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if err := items.UpdateStock(id, p.stock[id].InexactFloat64()); err != nil {
			return fmt.Errorf("update stock of %s: %w", id, err)
		}
	}
	if err := e.sales.WithTx(tx).Append(p.records); err != nil {
		return fmt.Errorf("append sales journal: %w", err)
	}
	if err := e.checkpoints.WithTx(tx).Advance(res.WindowEnd); err != nil {
		return fmt.Errorf("advance checkpoint: %w", err)
	}
	return nil
}

// loadPass reads the sold items, their direct BOM edges and those edges' subcomponents.
func (e *Engine) loadPass(tx *gorm.DB, res *Result, orders []square.Order) (*ledgerPass, error) {
	seen := make(map[string]struct{})
	var sold []string
	for _, o := range orders {
		for _, li := range o.LineItems {
			if li.CatalogObjectID == "" {
				continue
			}
			if _, ok := seen[li.CatalogObjectID]; !ok {
				seen[li.CatalogObjectID] = struct{}{}
				sold = append(sold, li.CatalogObjectID)
			}
		}
	}

	p := &ledgerPass{
		stock: make(map[string]decimal.Decimal),
		dirty: make(map[string]struct{}),
		res:   res,
	}
	var err error
	if p.items, err = e.items.WithTx(tx).LockByIDs(sold); err != nil {
		return nil, fmt.Errorf("load sold items: %w", err)
	}
	known := make([]string, 0, len(p.items))
	for id := range p.items {
		known = append(known, id)
	}
	if p.edges, err = e.bom.WithTx(tx).ComponentsOfMany(known); err != nil {
		return nil, fmt.Errorf("load bom edges: %w", err)
	}
	var subs []string
	for _, edges := range p.edges {
		for _, edge := range edges {
			if _, ok := p.items[edge.SubcomponentID]; !ok {
				subs = append(subs, edge.SubcomponentID)
			}
		}
	}
	if len(subs) > 0 {
		more, err := e.items.WithTx(tx).LockByIDs(subs)
		if err != nil {
			return nil, fmt.Errorf("load subcomponents: %w", err)
		}
		for id, item := range more {
			p.items[id] = item
		}
	}
	return p, nil
}

func (p *ledgerPass) applyLineItem(order square.Order, li square.LineItem) {
	if !validQuantity(li.Quantity) {
		p.res.Skipped++
		p.warn(Warning{Kind: InvalidQuantity, ItemID: li.CatalogObjectID, OrderID: order.ID, Detail: fmt.Sprintf("quantity %q", li.RawQuantity)})
		return
	}
	item, ok := p.items[li.CatalogObjectID]
	if !ok {
		p.res.Skipped++
		p.warn(Warning{Kind: UnknownLineItem, ItemID: li.CatalogObjectID, OrderID: order.ID, Detail: li.Name})
		return
	}

	sold := decimal.NewFromFloat(li.Quantity)
	p.deplete(item, sold, order.ID, "")
	// One level only: subcomponents of subcomponents are not touched.
	for _, edge := range p.edges[item.ID] {
		sub, ok := p.items[edge.SubcomponentID]
		if !ok {
			p.warn(Warning{Kind: MissingSubcomponent, ItemID: edge.SubcomponentID, OrderID: order.ID, ParentID: item.ID})
			continue
		}
		p.deplete(sub, sold.Mul(decimal.NewFromFloat(edge.QuantityRequired)), order.ID, item.ID)
	}

	p.records = append(p.records, salesEntity.SalesRecord{
		ItemID:       item.ID,
		OrderID:      order.ID,
		QuantitySold: li.Quantity,
		TotalMoney:   decimal.New(li.TotalMoneyMinor, -2),
		Date:         order.CreatedAt.UTC(),
		SyncRunID:    p.res.RunID,
	})
	p.res.SalesProcessed++
}

// deplete subtracts qty from item, clamping at zero with a warning. Stock is
// carried as a decimal for the whole pass and converted back only when stored.
func (p *ledgerPass) deplete(item *inventoryEntity.InventoryItem, qty decimal.Decimal, orderID, parentID string) {
	p.dirty[item.ID] = struct{}{}
	have, ok := p.stock[item.ID]
	if !ok {
		have = decimal.NewFromFloat(item.Stock)
	}
	if qty.GreaterThan(have) {
		p.warn(Warning{
			Kind:      NegativeStockClamped,
			ItemID:    item.ID,
			OrderID:   orderID,
			ParentID:  parentID,
			Requested: qty.InexactFloat64(),
			Available: have.InexactFloat64(),
		})
		have = decimal.Zero
	} else {
		have = have.Sub(qty)
	}
	p.stock[item.ID] = have
	item.Stock = have.InexactFloat64()
}

func (p *ledgerPass) warn(w Warning) {
	p.res.Warnings = append(p.res.Warnings, w)
}

func validQuantity(q float64) bool {
	return q > 0 && !math.IsInf(q, 0) && !math.IsNaN(q)
}
