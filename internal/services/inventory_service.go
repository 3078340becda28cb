package services

import (
	"vitrina/internal/pricing"
	"vitrina/internal/repos"
)

// LowStockThreshold marks tracked units that should be restocked soon.
const LowStockThreshold = 2

type InventoryService struct {
	Inv   *repos.InventoryRepo
	Prods *repos.ProductRepo

	locks *KeyedMutex
}

// locks is the per-product lock of the CatalogService.
func NewInventoryService(inv *repos.InventoryRepo, prods *repos.ProductRepo, locks *KeyedMutex) *InventoryService {
	return &InventoryService{Inv: inv, Prods: prods, locks: locks}
}

// StockRow adds the availability status to one sellable unit.
type StockRow struct {
	repos.InventoryRow
	Status string `json:"status"`
}

// Status converts a unit's stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
// Untracked units are always IN_STOCK while active.
func Status(row repos.InventoryRow) string {
	switch {
	case !row.Active:
		return "OUT_OF_STOCK"
	case !row.TrackInventory:
		return "IN_STOCK"
	case row.Qty > LowStockThreshold:
		return "IN_STOCK"
	case row.Qty > 0:
		return "LOW_STOCK"
	}
	return "OUT_OF_STOCK"
}

type InventoryReport struct {
	Rows []StockRow `json:"rows"`
	Low  []StockRow `json:"low"`
}

func (s *InventoryService) Report() (InventoryReport, error) {
	all, err := s.Inv.ListAll()
	if err != nil {
		return InventoryReport{}, err
	}
	low, err := s.Inv.Low(LowStockThreshold)
	if err != nil {
		return InventoryReport{}, err
	}
	return InventoryReport{Rows: withStatus(all), Low: withStatus(low)}, nil
}

func withStatus(rows []repos.InventoryRow) []StockRow {
	out := make([]StockRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, StockRow{InventoryRow: r, Status: Status(r)})
	}
	return out
}

// SetStock sets the stock of a simple product, or of one variant when
// variantID is given. Asking for the product stock of a variant product is
// rejected because its variants carry the stock.
func (s *InventoryService) SetStock(productID, variantID string, qty int) error {
	if qty < 0 || qty > pricing.Unlimited/2 {
		return ErrInvalidInput
	}
	unlock := s.locks.Lock(productID)
	defer unlock()

	if variantID != "" {
		return notFound(s.Inv.SetVariantQty(productID, variantID, qty))
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return notFound(err)
	}
	if p.HasVariants() {
		return ErrVariantRequired
	}
	return notFound(s.Inv.SetProductQty(productID, qty))
}
