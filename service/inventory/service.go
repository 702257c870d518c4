package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	inventoryEntity "inventory.GO/model/entity/inventory"
	inventoryRepo "inventory.GO/model/repository/inventory"
)

const (
	minSearchLength = 2
	searchLimit     = 25
)

// ItemDetails is an item with its direct subcomponents.
type ItemDetails struct {
	inventoryEntity.InventoryItem
	Subcomponents []inventoryRepo.SubcomponentDetail `json:"subcomponents"`
}

// Service implements manual inventory management on the ledger.
type Service struct {
	db    *gorm.DB
	items *inventoryRepo.InventoryRepository
	bom   *inventoryRepo.BOMRepository
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:    db,
		items: inventoryRepo.NewInventoryRepository(db),
		bom:   inventoryRepo.NewBOMRepository(db),
	}
}

// AddItem creates a manually entered item under a fresh uuid.
func (s *Service) AddItem(in ItemInput) (*inventoryEntity.InventoryItem, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}
	item := &inventoryEntity.InventoryItem{
		ID:               uuid.NewString(),
		Name:             v.name,
		ReorderThreshold: v.threshold,
		ReorderQuantity:  v.quantity,
		Supplier:         &v.supplier,
		IsMix:            in.IsMix,
	}
	if v.stock != nil {
		item.Stock = *v.stock
	}
	if err := s.items.Create(item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// UpdateItem replaces the editable fields of an item. An empty stock keeps the
// current value. When a mix item's stock rises by delta, each subcomponent in
// in.ConsumeSubcomponents is reduced by delta times its required quantity; if
// any lacks stock nothing is written and ErrInsufficientStock is returned.
func (s *Service) UpdateItem(id string, in ItemInput) (*inventoryEntity.InventoryItem, error) {
	v, err := in.validate()
	if err != nil {
		return nil, err
	}
	var updated *inventoryEntity.InventoryItem
	err = s.db.Transaction(func(tx *gorm.DB) error {
		items := s.items.WithTx(tx)
		item, err := items.FindByID(id)
		if err != nil {
			return err
		}
		newStock := item.Stock
		if v.stock != nil {
			newStock = *v.stock
		}
		if delta := newStock - item.Stock; delta > 0 && in.IsMix && len(in.ConsumeSubcomponents) > 0 {
			if err := s.consumeSubcomponents(tx, id, delta, in.ConsumeSubcomponents); err != nil {
				return err
			}
		}
		item.Name = v.name
		item.Stock = newStock
		item.ReorderThreshold = v.threshold
		item.ReorderQuantity = v.quantity
		item.Supplier = &v.supplier
		item.IsMix = in.IsMix
		if err := items.Save(item); err != nil {
			return fmt.Errorf("save item: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) consumeSubcomponents(tx *gorm.DB, id string, delta float64, selected []string) error {
	edges, err := s.bom.WithTx(tx).ComponentsOf(id)
	if err != nil {
		return fmt.Errorf("load subcomponents: %w", err)
	}
	use := make(map[string]bool, len(selected))
	for _, sid := range selected {
		use[sid] = true
	}
	items := s.items.WithTx(tx)
	for _, edge := range edges {
		if !use[edge.SubcomponentID] {
			continue
		}
		sub, err := items.FindByID(edge.SubcomponentID)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		required := delta * edge.QuantityRequired
		if required > sub.Stock {
			return fmt.Errorf("%w: not enough %s (need %g, have %g)", ErrInsufficientStock, sub.Name, required, sub.Stock)
		}
		if err := items.UpdateStock(sub.ID, sub.Stock-required); err != nil {
			return fmt.Errorf("update stock of %s: %w", sub.ID, err)
		}
	}
	return nil
}

// DeleteItem removes an item and every BOM edge referencing it. Journal rows are kept.
func (s *Service) DeleteItem(id string) error {
	return s.items.Delete(id)
}

func (s *Service) GetItem(id string) (*ItemDetails, error) {
	item, err := s.items.FindByID(id)
	if err != nil {
		return nil, err
	}
	subs, err := s.bom.Details(id)
	if err != nil {
		return nil, fmt.Errorf("load subcomponents: %w", err)
	}
	if subs == nil {
		subs = []inventoryRepo.SubcomponentDetail{}
	}
	return &ItemDetails{InventoryItem: *item, Subcomponents: subs}, nil
}

// ListItems returns every item, optionally filtered by a case-insensitive name substring.
func (s *Service) ListItems(search string) ([]inventoryEntity.InventoryItem, error) {
	return s.items.List(search)
}

// SearchItems backs the subcomponent picker: queries shorter than two
// characters return nothing, and excludeID is left out of the results.
func (s *Service) SearchItems(q, excludeID string) ([]inventoryEntity.InventoryItem, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minSearchLength {
		return []inventoryEntity.InventoryItem{}, nil
	}
	return s.items.SearchByName(q, excludeID, searchLimit)
}

// AddSubcomponent links subID to compositeID at qty units per composite unit.
func (s *Service) AddSubcomponent(compositeID, subID string, qty Field) (*inventoryEntity.ItemSubcomponent, error) {
	subID = strings.TrimSpace(subID)
	if subID == "" {
		return nil, invalid("subcomponent_id", "cannot be empty")
	}
	if subID == compositeID {
		return nil, invalid("subcomponent_id", "an item cannot be its own subcomponent")
	}
	q, err := qty.parse("quantity")
	if err != nil {
		return nil, err
	}
	if q == nil || *q <= 0 {
		return nil, invalid("quantity", "must be greater than zero")
	}

	edge := &inventoryEntity.ItemSubcomponent{ItemID: compositeID, SubcomponentID: subID, QuantityRequired: *q}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		items := s.items.WithTx(tx)
		if _, err := items.FindByID(compositeID); err != nil {
			return err
		}
		if _, err := items.FindByID(subID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalid("subcomponent_id", "unknown item "+subID)
			}
			return err
		}
		return s.bom.WithTx(tx).Add(edge)
	})
	if err != nil {
		return nil, err
	}
	return edge, nil
}

func (s *Service) RemoveSubcomponent(compositeID, subID string) error {
	return s.bom.Remove(compositeID, subID)
}
