package services

import (
	"errors"
	"fmt"

	"vitrina/internal/cart"
	"vitrina/internal/domain"
	"vitrina/internal/pricing"
	"vitrina/internal/repos"
)

// saveAttempts bounds retries after losing a version race to another process.
const saveAttempts = 3

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo

	locks *KeyedMutex
}

// locks must be shared with the OrderService so checkout and cart edits of
// one session never interleave.
func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo, locks *KeyedMutex) *CartService {
	return &CartService{Carts: carts, Prods: prods, locks: locks}
}

type CartView struct {
	Lines []domain.CartLine `json:"lines"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func newView(lines []domain.CartLine) CartView {
	return CartView{Lines: lines, Total: cart.Total(lines), Count: cart.Count(lines)}
}

func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, _, err := s.Carts.Load(cartID)
	if err != nil {
		return CartView{}, err
	}
	return newView(lines), nil
}

// Add puts qty units of a product, or of one of its variants, in the cart.
// Quantities above the available stock are capped without error.
func (s *CartService) Add(sessionID, productID, variantID string, qty int) (CartView, error) {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return CartView{}, notFound(err)
	}
	line, available, err := offer(p, variantID)
	if err != nil {
		return CartView{}, err
	}
	line.Quantity = qty

	return s.mutate(sessionID, func(lines []domain.CartLine) []domain.CartLine {
		return cart.Add(lines, line, available)
	})
}

// UpdateQuantity applies a signed delta to one line; reaching zero removes it.
func (s *CartService) UpdateQuantity(sessionID, cartItemID string, delta int) (CartView, error) {
	return s.mutateWith(sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		l, ok := cart.Find(lines, cartItemID)
		if !ok {
			return lines, nil
		}
		available := 0
		if p, err := s.Prods.Get(l.ProductID); err == nil {
			available = stockFor(p, l.VariantID)
		} else if !errors.Is(notFound(err), ErrNotFound) {
			return nil, err
		}
		return cart.UpdateQuantity(lines, cartItemID, delta, available), nil
	})
}

func (s *CartService) Remove(sessionID, cartItemID string) (CartView, error) {
	return s.mutate(sessionID, func(lines []domain.CartLine) []domain.CartLine {
		return cart.Remove(lines, cartItemID)
	})
}

func (s *CartService) mutate(sessionID string, fn func([]domain.CartLine) []domain.CartLine) (CartView, error) {
	return s.mutateWith(sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		return fn(lines), nil
	})
}

// mutateWith runs fn against the stored cart under the session lock and
// saves the result when fn produced a new slice.
func (s *CartService) mutateWith(sessionID string, fn func([]domain.CartLine) ([]domain.CartLine, error)) (CartView, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	for attempt := 0; ; attempt++ {
		lines, version, err := s.Carts.Load(cartID)
		if err != nil {
			return CartView{}, err
		}
		next, err := fn(lines)
		if err != nil {
			return CartView{}, err
		}
		if sameLines(lines, next) {
			return newView(lines), nil
		}
		err = s.Carts.Save(cartID, version, next)
		if err == nil {
			return newView(next), nil
		}
		if !errors.Is(err, repos.ErrConflict) || attempt+1 >= saveAttempts {
			return CartView{}, fmt.Errorf("save cart: %w", err)
		}
	}
}

// sameLines reports whether b is the very slice a, which the cart package
// returns when a mutation changes nothing.
func sameLines(a, b []domain.CartLine) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// offer builds the cart line for a product or one of its variants and
// returns how many units can be bought.
func offer(p domain.Product, variantID string) (domain.CartLine, int, error) {
	line := domain.CartLine{ProductID: p.ID, Name: p.Name, ImageURL: p.ImageURL}
	if !p.Active {
		return line, 0, ErrUnavailable
	}
	if !p.HasVariants() {
		if variantID != "" {
			return line, 0, ErrUnknownVariant
		}
		if !pricing.ProductAvailable(p) {
			return line, 0, ErrUnavailable
		}
		line.UnitPrice = p.Price
		return line, pricing.AvailableStock(p, nil), nil
	}

	if variantID == "" {
		return line, 0, ErrVariantRequired
	}
	v, ok := findVariant(p, variantID)
	if !ok {
		return line, 0, ErrUnknownVariant
	}
	if !pricing.VariantAvailable(v, p.TrackInventory) {
		return line, 0, ErrUnavailable
	}
	line.VariantID = v.ID
	line.VariantTitle = v.Title
	line.UnitPrice = v.Price
	if v.ImageURL != nil {
		line.ImageURL = *v.ImageURL
	}
	return line, pricing.AvailableStock(p, &v), nil
}

// stockFor is the purchasable stock behind an existing cart line; zero when
// its product or variant is gone or can no longer be bought.
func stockFor(p domain.Product, variantID string) int {
	if !p.Active {
		return 0
	}
	if variantID == "" {
		if p.HasVariants() || !pricing.ProductAvailable(p) {
			return 0
		}
		return pricing.AvailableStock(p, nil)
	}
	v, ok := findVariant(p, variantID)
	if !ok || !pricing.VariantAvailable(v, p.TrackInventory) {
		return 0
	}
	return pricing.AvailableStock(p, &v)
}

func findVariant(p domain.Product, id string) (domain.Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return domain.Variant{}, false
}
