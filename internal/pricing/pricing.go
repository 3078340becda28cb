// Package pricing derives display price, price range and buyability for
// simple and variant products.
package pricing

import (
	"math"

	"vitrina/internal/domain"
	"vitrina/internal/variants"
)

// Unlimited is the available stock of anything whose inventory is not tracked.
const Unlimited = math.MaxInt

func Active(vs []domain.Variant) []domain.Variant {
	out := make([]domain.Variant, 0, len(vs))
	for _, v := range vs {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out
}

// MinPrice is the lowest active price. With no active variants it falls back
// to the lowest positive price of any variant, or 0.
func MinPrice(vs []domain.Variant) float64 {
	return extreme(vs, func(a, b float64) bool { return a < b })
}

// MaxPrice mirrors MinPrice.
func MaxPrice(vs []domain.Variant) float64 {
	return extreme(vs, func(a, b float64) bool { return a > b })
}

func extreme(vs []domain.Variant, better func(a, b float64) bool) float64 {
	if act := Active(vs); len(act) > 0 {
		best := act[0].Price
		for _, v := range act[1:] {
			if better(v.Price, best) {
				best = v.Price
			}
		}
		return best
	}
	best, found := 0.0, false
	for _, v := range vs {
		if v.Price <= 0 {
			continue
		}
		if !found || better(v.Price, best) {
			best, found = v.Price, true
		}
	}
	return best
}

// DisplayPrice is the product's own price when simple, or the lowest
// variant price otherwise.
func DisplayPrice(p domain.Product) float64 {
	if p.HasVariants() {
		return MinPrice(p.Variants)
	}
	return p.Price
}

func HasPriceRange(p domain.Product) bool {
	if !p.HasVariants() {
		return false
	}
	return MinPrice(p.Variants) != MaxPrice(p.Variants)
}

// ProductAvailable reports whether anything of p can be bought right now.
func ProductAvailable(p domain.Product) bool {
	if !p.HasVariants() {
		if !p.TrackInventory {
			return p.Active
		}
		return p.StockQuantity > 0
	}
	for _, v := range p.Variants {
		if VariantAvailable(v, p.TrackInventory) {
			return true
		}
	}
	return false
}

func VariantAvailable(v domain.Variant, trackInventory bool) bool {
	return v.IsActive && (!trackInventory || v.StockQuantity > 0)
}

// AvailableStock caps the quantity of a cart line. v is nil for simple products.
func AvailableStock(p domain.Product, v *domain.Variant) int {
	if !p.TrackInventory {
		return Unlimited
	}
	qty := p.StockQuantity
	if v != nil {
		qty = v.StockQuantity
	}
	if qty < 0 {
		return 0
	}
	return qty
}

// Match finds the variant whose option combination is exactly selection.
// A partial or unknown selection reports false.
func Match(vs []domain.Variant, selection map[string]string) (domain.Variant, bool) {
	if len(selection) == 0 {
		return domain.Variant{}, false
	}
	want := variants.Key(selection)
	for _, v := range vs {
		if variants.Key(v.Options) == want {
			return v, true
		}
	}
	return domain.Variant{}, false
}
