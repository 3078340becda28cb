package services

import (
	"errors"
	"fmt"
	"strings"

	"vitrina/internal/cart"
	"vitrina/internal/domain"
	"vitrina/internal/money"
	"vitrina/internal/order"
	"vitrina/internal/repos"

	"github.com/google/uuid"
)

// Order statuses. Checkout records SENT; the owner moves it on.
const (
	StatusSent      = "SENT"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

type Store struct {
	Name  string
	Phone string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Store  Store
	Format money.Formatter

	locks *KeyedMutex
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, store Store, locks *KeyedMutex) *OrderService {
	return &OrderService{Carts: carts, Prods: prods, Orders: orders, Store: store, Format: money.COP, locks: locks}
}

// Receipt is what the shopper gets back from checkout.
type Receipt struct {
	OrderID string            `json:"order_id"`
	Lines   []domain.CartLine `json:"lines"`
	Total   float64           `json:"total"`
	Message string            `json:"message"`
	Link    string            `json:"link"`
	// Dropped lists the names of lines that could no longer be bought.
	Dropped []string `json:"dropped,omitempty"`
}

// Place turns the session cart into an order message, records it and
// empties the cart. Lines are repriced from the catalog first.
func (s *OrderService) Place(sessionID, customerName string) (Receipt, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return Receipt{}, err
	}
	lines, _, err := s.Carts.Load(cartID)
	if err != nil {
		return Receipt{}, err
	}
	if len(lines) == 0 {
		return Receipt{}, ErrEmptyCart
	}

	current, dropped, err := s.reprice(lines)
	if err != nil {
		return Receipt{}, err
	}
	if len(current) == 0 {
		return Receipt{Dropped: dropped}, ErrEmptyCart
	}

	msgLines := order.Lines(current)
	customer := strings.TrimSpace(customerName)
	msg := order.Message(msgLines, s.Store.Name, customer, s.Format)
	rc := Receipt{
		OrderID: uuid.NewString(),
		Lines:   current,
		Total:   order.Total(msgLines),
		Message: msg,
		Link:    order.Link(s.Store.Phone, msg),
		Dropped: dropped,
	}

	rows := make([]repos.OrderLineRow, 0, len(current))
	for i, l := range current {
		rows = append(rows, repos.OrderLineRow{
			LineNo:    i + 1,
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Name:      msgLines[i].Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	o := domain.Order{
		ID:           rc.OrderID,
		SessionID:    sessionID,
		CustomerName: customer,
		Total:        rc.Total,
		Message:      rc.Message,
		Link:         rc.Link,
	}
	if err := s.Orders.Create(o, rows); err != nil {
		return Receipt{}, fmt.Errorf("record order: %w", err)
	}
	if err := s.Carts.Clear(cartID); err != nil {
		return Receipt{}, fmt.Errorf("clear cart: %w", err)
	}
	return rc, nil
}

// reprice rebuilds each line from the current catalog. Lines whose product
// or variant is gone or unbuyable are dropped and reported by name.
func (s *OrderService) reprice(lines []domain.CartLine) ([]domain.CartLine, []string, error) {
	products := map[string]domain.Product{}
	out := []domain.CartLine{}
	var dropped []string
	for _, l := range lines {
		p, ok := products[l.ProductID]
		if !ok {
			got, err := s.Prods.Get(l.ProductID)
			if err != nil {
				if errors.Is(notFound(err), ErrNotFound) {
					dropped = append(dropped, l.Name)
					continue
				}
				return nil, nil, err
			}
			p, products[l.ProductID] = got, got
		}
		fresh, available, err := offer(p, l.VariantID)
		if err != nil {
			dropped = append(dropped, l.Name)
			continue
		}
		fresh.Quantity = l.Quantity
		out = cart.Add(out, fresh, available)
	}
	return out, dropped, nil
}

// History lists the orders one shopper session has sent.
func (s *OrderService) History(sessionID string) ([]domain.Order, error) {
	return s.Orders.ListBySession(sessionID)
}

func (s *OrderService) Latest(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

func (s *OrderService) Get(id string) (domain.Order, []repos.OrderLineRow, error) {
	o, lines, err := s.Orders.Get(id)
	if err != nil {
		return domain.Order{}, nil, notFound(err)
	}
	return o, lines, nil
}

func (s *OrderService) SetStatus(id, status string) error {
	switch status {
	case StatusSent, StatusConfirmed, StatusCancelled:
	default:
		return ErrInvalidInput
	}
	return notFound(s.Orders.UpdateStatus(id, status))
}
