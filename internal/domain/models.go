package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// OptionDefinition is one axis of variation, e.g. Color with its allowed values.
type OptionDefinition struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// OptionList is stored as a JSON column on products.
type OptionList []OptionDefinition

func (l OptionList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]OptionDefinition(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *OptionList) Scan(src any) error {
	return scanJSON(src, l)
}

// OptionValues maps option name to the chosen value.
type OptionValues map[string]string

func (m OptionValues) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *OptionValues) Scan(src any) error {
	return scanJSON(src, m)
}

func scanJSON(src any, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	default:
		return fmt.Errorf("domain: cannot scan %T as json", src)
	}
}

type Variant struct {
	ID            string       `db:"id" json:"id"`
	ProductID     string       `db:"product_id" json:"product_id,omitempty"`
	Title         string       `db:"title" json:"title"`
	Options       OptionValues `db:"options_json" json:"options"`
	Price         float64      `db:"price" json:"price"`
	ComparePrice  *float64     `db:"compare_price" json:"compare_price"`
	SKU           *string      `db:"sku" json:"sku"`
	StockQuantity int          `db:"stock_quantity" json:"stock_quantity"`
	ImageURL      *string      `db:"image_url" json:"image_url"`
	IsActive      bool         `db:"is_active" json:"is_active"`
	Position      int          `db:"position" json:"-"`
}

type ProductKind int

const (
	KindSimple ProductKind = iota
	KindVariant
)

func (k ProductKind) String() string {
	if k == KindVariant {
		return "variant"
	}
	return "simple"
}

// Product carries its own price and stock when simple. Once it has variants,
// the variant set supersedes Price and StockQuantity for display and buying.
type Product struct {
	ID             string     `db:"id" json:"id"`
	CategoryID     string     `db:"category_id" json:"category_id"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description"`
	ImageURL       string     `db:"image_url" json:"image_url"`
	Price          float64    `db:"price" json:"price"`
	StockQuantity  int        `db:"stock_quantity" json:"stock_quantity"`
	TrackInventory bool       `db:"track_inventory" json:"track_inventory"`
	Active         bool       `db:"active" json:"active"`
	Options        OptionList `db:"options_json" json:"options"`
	CreatedAt      string     `db:"created_at" json:"created_at"`
	UpdatedAt      string     `db:"updated_at" json:"updated_at"`

	Variants []Variant `db:"-" json:"variants"`
}

func (p Product) Kind() ProductKind {
	if len(p.Variants) > 0 {
		return KindVariant
	}
	return KindSimple
}

func (p Product) HasVariants() bool { return p.Kind() == KindVariant }

// CartLine is one row of a shopper's cart. VariantID is empty for simple products.
type CartLine struct {
	CartItemID   string  `db:"cart_item_id" json:"cart_item_id"`
	ProductID    string  `db:"product_id" json:"product_id"`
	VariantID    string  `db:"variant_id" json:"variant_id,omitempty"`
	Name         string  `db:"name" json:"name"`
	VariantTitle string  `db:"variant_title" json:"variant_title,omitempty"`
	ImageURL     string  `db:"image_url" json:"image_url,omitempty"`
	Quantity     int     `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
}

func (l CartLine) Subtotal() float64 { return l.UnitPrice * float64(l.Quantity) }

type Order struct {
	ID           string  `db:"id" json:"id"`
	SessionID    string  `db:"session_id" json:"-"`
	CustomerName string  `db:"customer_name" json:"customer_name"`
	Total        float64 `db:"total" json:"total"`
	Message      string  `db:"message" json:"message"`
	Link         string  `db:"link" json:"link"`
	Status       string  `db:"status" json:"status"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
}
