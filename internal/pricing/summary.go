package pricing

import "vitrina/internal/domain"

type VariantSummary struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Options   domain.OptionValues `json:"options"`
	Price     float64             `json:"price"`
	Compare   *float64            `json:"compare_price,omitempty"`
	Available bool                `json:"available"`
}

// Summary is everything a storefront needs to price and offer one product.
type Summary struct {
	ProductID     string           `json:"product_id"`
	Kind          string           `json:"kind"`
	DisplayPrice  float64          `json:"display_price"`
	MinPrice      float64          `json:"min_price"`
	MaxPrice      float64          `json:"max_price"`
	HasPriceRange bool             `json:"has_price_range"`
	Available     bool             `json:"available"`
	Variants      []VariantSummary `json:"variants,omitempty"`
}

func Summarize(p domain.Product) Summary {
	s := Summary{
		ProductID:     p.ID,
		Kind:          p.Kind().String(),
		DisplayPrice:  DisplayPrice(p),
		MinPrice:      p.Price,
		MaxPrice:      p.Price,
		HasPriceRange: HasPriceRange(p),
		Available:     ProductAvailable(p),
	}
	if !p.HasVariants() {
		return s
	}
	s.MinPrice = MinPrice(p.Variants)
	s.MaxPrice = MaxPrice(p.Variants)
	for _, v := range p.Variants {
		s.Variants = append(s.Variants, VariantSummary{
			ID:        v.ID,
			Title:     v.Title,
			Options:   v.Options,
			Price:     v.Price,
			Compare:   v.ComparePrice,
			Available: VariantAvailable(v, p.TrackInventory),
		})
	}
	return s
}
