package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vitrina/internal/domain"
	"vitrina/internal/plan"
	"vitrina/internal/pricing"
	"vitrina/internal/repos"
	"vitrina/internal/variants"
)

type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Features []string
	Limits   plan.Limits
	NewID    func() string

	locks *KeyedMutex
}

// locks must be shared with the InventoryService so stock edits and variant
// regeneration of one product are serialized.
func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, features []string, limits plan.Limits, locks *KeyedMutex) *CatalogService {
	return &CatalogService{
		Cats:     cats,
		Prods:    prods,
		Features: features,
		Limits:   limits,
		NewID:    uuid.NewString,
		locks:    locks,
	}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) CreateCategory(name string) (domain.Category, error) {
	n, err := s.Cats.Count()
	if err != nil {
		return domain.Category{}, err
	}
	if !plan.CanAddCategory(s.Features, s.Limits, n) {
		return domain.Category{}, ErrPlanLimit
	}
	c := domain.Category{ID: s.NewID(), Name: strings.TrimSpace(name)}
	if err := s.Cats.Create(c); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

type NewProduct struct {
	CategoryID     string
	Name           string
	Description    string
	ImageURL       string
	Price          float64
	StockQuantity  int
	TrackInventory bool
}

func (s *CatalogService) CreateProduct(in NewProduct) (domain.Product, error) {
	n, err := s.Prods.Count()
	if err != nil {
		return domain.Product{}, err
	}
	if !plan.CanAddProduct(s.Features, s.Limits, n) {
		return domain.Product{}, ErrPlanLimit
	}
	if in.CategoryID != "" {
		ok, err := s.Cats.Exists(in.CategoryID)
		if err != nil {
			return domain.Product{}, err
		}
		if !ok {
			return domain.Product{}, fmt.Errorf("category %s: %w", in.CategoryID, ErrNotFound)
		}
	}
	p := domain.Product{
		ID:             s.NewID(),
		CategoryID:     in.CategoryID,
		Name:           strings.TrimSpace(in.Name),
		Description:    in.Description,
		ImageURL:       in.ImageURL,
		Price:          in.Price,
		StockQuantity:  in.StockQuantity,
		TrackInventory: in.TrackInventory,
		Active:         true,
		Options:        domain.OptionList{},
	}
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return domain.Product{}, notFound(err)
	}
	return p, nil
}

func (s *CatalogService) ListProducts(categoryID string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(categoryID, pageSize, offset)
}

// Summary prices one product for the storefront.
func (s *CatalogService) Summary(id string) (pricing.Summary, error) {
	p, err := s.GetProduct(id)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Summarize(p), nil
}

// Selection is the outcome of matching a shopper's chosen option values.
type Selection struct {
	Matched   bool            `json:"matched"`
	Variant   *domain.Variant `json:"variant,omitempty"`
	Available bool            `json:"available"`
	Stock     *int            `json:"stock,omitempty"`
}

// MatchSelection resolves chosen option values to a variant. An incomplete
// or unknown selection is not an error: Matched is false.
func (s *CatalogService) MatchSelection(productID string, selection map[string]string) (Selection, error) {
	p, err := s.GetProduct(productID)
	if err != nil {
		return Selection{}, err
	}
	v, ok := pricing.Match(p.Variants, selection)
	if !ok {
		return Selection{}, nil
	}
	sel := Selection{Matched: true, Variant: &v, Available: pricing.VariantAvailable(v, p.TrackInventory)}
	if p.TrackInventory {
		n := pricing.AvailableStock(p, &v)
		sel.Stock = &n
	}
	return sel, nil
}

// OptionsOutcome reports a committed option edit.
type OptionsOutcome struct {
	Validation variants.Result  `json:"validation"`
	Variants   []domain.Variant `json:"variants"`
	Orphaned   []domain.Variant `json:"orphaned"`
	Priced     bool             `json:"priced"`
}

// SetOptions validates the option list, regenerates the variant set and
// merges it with what is stored, then persists the result. Edits of one
// product are serialized. Orphaned variants are dropped from storage and
// returned so the owner can reconcile them by hand.
func (s *CatalogService) SetOptions(productID string, opts []domain.OptionDefinition) (OptionsOutcome, error) {
	if len(opts) > 0 && !plan.HasFeature(s.Features, plan.FeatureVariants) {
		return OptionsOutcome{}, ErrFeatureDisabled
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	existing, err := s.GetProduct(productID)
	if err != nil {
		return OptionsOutcome{}, err
	}
	rec, res := variants.Recompute(opts, existing.Variants, s.NewID)
	if !res.Valid {
		return OptionsOutcome{Validation: res}, ErrInvalidOptions
	}
	for i := range rec.Variants {
		rec.Variants[i].ProductID = productID
	}

	stored := make(domain.OptionList, 0, len(opts))
	for _, o := range opts {
		vals := make([]string, len(o.Values))
		for i, v := range o.Values {
			vals[i] = strings.TrimSpace(v)
		}
		stored = append(stored, domain.OptionDefinition{Name: strings.TrimSpace(o.Name), Values: vals})
	}
	if err := s.Prods.ReplaceVariants(productID, stored, rec.Variants); err != nil {
		return OptionsOutcome{}, fmt.Errorf("store variants: %w", err)
	}
	return OptionsOutcome{
		Validation: res,
		Variants:   rec.Variants,
		Orphaned:   rec.Orphaned,
		Priced:     variants.Priced(rec.Variants),
	}, nil
}

// VariantPatch carries the commercial fields an owner may edit. Nil
// pointers leave a field unchanged.
type VariantPatch struct {
	Price             *float64 `json:"price"`
	ComparePrice      *float64 `json:"compare_price"`
	ClearComparePrice bool     `json:"clear_compare_price"`
	SKU               *string  `json:"sku"`
	StockQuantity     *int     `json:"stock_quantity"`
	ImageURL          *string  `json:"image_url"`
	IsActive          *bool    `json:"is_active"`
}

func (s *CatalogService) UpdateVariant(productID, variantID string, patch VariantPatch) (domain.Variant, error) {
	if (patch.Price != nil && *patch.Price < 0) ||
		(patch.ComparePrice != nil && *patch.ComparePrice < 0) ||
		(patch.StockQuantity != nil && *patch.StockQuantity < 0) {
		return domain.Variant{}, ErrInvalidInput
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	vs, err := s.Prods.Variants(productID)
	if err != nil {
		return domain.Variant{}, err
	}
	var v *domain.Variant
	for i := range vs {
		if vs[i].ID == variantID {
			v = &vs[i]
			break
		}
	}
	if v == nil {
		return domain.Variant{}, ErrUnknownVariant
	}

	if patch.Price != nil {
		v.Price = *patch.Price
	}
	if patch.ClearComparePrice {
		v.ComparePrice = nil
	} else if patch.ComparePrice != nil {
		cp := *patch.ComparePrice
		v.ComparePrice = &cp
	}
	if patch.SKU != nil {
		v.SKU = blankToNil(*patch.SKU)
	}
	if patch.StockQuantity != nil {
		v.StockQuantity = *patch.StockQuantity
	}
	if patch.ImageURL != nil {
		v.ImageURL = blankToNil(*patch.ImageURL)
	}
	if patch.IsActive != nil {
		v.IsActive = *patch.IsActive
	}
	if err := s.Prods.UpdateVariant(*v); err != nil {
		return domain.Variant{}, notFound(err)
	}
	return *v, nil
}

type ProductPatch struct {
	Price          *float64 `json:"price"`
	StockQuantity  *int     `json:"stock_quantity"`
	TrackInventory *bool    `json:"track_inventory"`
	Active         *bool    `json:"active"`
}

// UpdateProduct edits the scalar price/stock fields. They are kept on
// variant products too but only count while the product has no variants.
func (s *CatalogService) UpdateProduct(productID string, patch ProductPatch) (domain.Product, error) {
	if (patch.Price != nil && *patch.Price < 0) || (patch.StockQuantity != nil && *patch.StockQuantity < 0) {
		return domain.Product{}, ErrInvalidInput
	}

	unlock := s.locks.Lock(productID)
	defer unlock()

	p, err := s.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.StockQuantity != nil {
		p.StockQuantity = *patch.StockQuantity
	}
	if patch.TrackInventory != nil {
		p.TrackInventory = *patch.TrackInventory
	}
	if patch.Active != nil {
		p.Active = *patch.Active
	}
	if err := s.Prods.UpdateScalars(p); err != nil {
		return domain.Product{}, notFound(err)
	}
	return p, nil
}

func blankToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
