package reconcile

import "fmt"

type WarningKind string

const (
	// UnknownLineItem: the sold item is not in the ledger; the line item is skipped.
	UnknownLineItem WarningKind = "unknown_line_item"
	// NegativeStockClamped: a depletion exceeded stock; stock was set to zero.
	NegativeStockClamped WarningKind = "negative_stock_clamped"
	// InvalidQuantity: the line item quantity was not a positive number; it is skipped.
	InvalidQuantity WarningKind = "invalid_quantity"
	// MissingSubcomponent: a BOM edge points at an item no longer in the ledger.
	MissingSubcomponent WarningKind = "missing_subcomponent"
)

// Warning is a non-fatal condition met while applying a window.
type Warning struct {
	Kind      WarningKind `json:"kind"`
	ItemID    string      `json:"item_id,omitempty"`
	OrderID   string      `json:"order_id,omitempty"`
	ParentID  string      `json:"parent_id,omitempty"`
	Requested float64     `json:"requested,omitempty"`
	Available float64     `json:"available,omitempty"`
	Detail    string      `json:"detail,omitempty"`
}

func (w Warning) String() string {
	switch w.Kind {
	case NegativeStockClamped:
		s := fmt.Sprintf("%s: item %s needed %g but had %g, clamped to 0", w.Kind, w.ItemID, w.Requested, w.Available)
		if w.ParentID != "" {
			s += " (subcomponent of " + w.ParentID + ")"
		}
		return s
	case UnknownLineItem:
		return fmt.Sprintf("%s: item %q in order %s not in ledger, skipped", w.Kind, w.ItemID, w.OrderID)
	default:
		return fmt.Sprintf("%s: item %q order %s %s", w.Kind, w.ItemID, w.OrderID, w.Detail)
	}
}
