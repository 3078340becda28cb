package repos

import (
	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// InventoryRow is one sellable unit: a simple product or one variant.
type InventoryRow struct {
	ProductID      string `db:"product_id" json:"product_id"`
	VariantID      string `db:"variant_id" json:"variant_id,omitempty"`
	Name           string `db:"name" json:"name"`
	VariantTitle   string `db:"variant_title" json:"variant_title,omitempty"`
	TrackInventory bool   `db:"track_inventory" json:"track_inventory"`
	Active         bool   `db:"active" json:"active"`
	Qty            int    `db:"qty" json:"qty"`
}

// ListAll returns stock for every simple product and every variant.
func (r *InventoryRepo) ListAll() ([]InventoryRow, error) {
	rows := []InventoryRow{}
	err := r.db.Select(&rows, `
		SELECT p.id AS product_id, '' AS variant_id, p.name, '' AS variant_title,
		       p.track_inventory, p.active, p.stock_quantity AS qty
		FROM products p
		WHERE NOT EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id)
		UNION ALL
		SELECT v.product_id, v.id, p.name, v.title, p.track_inventory, v.is_active, v.stock_quantity
		FROM variants v
		JOIN products p ON p.id = v.product_id
		ORDER BY name, variant_title
	`)
	return rows, err
}

// Low returns tracked rows at or below threshold, for restock alerts.
func (r *InventoryRepo) Low(threshold int) ([]InventoryRow, error) {
	all, err := r.ListAll()
	if err != nil {
		return nil, err
	}
	out := []InventoryRow{}
	for _, row := range all {
		if row.TrackInventory && row.Active && row.Qty <= threshold {
			out = append(out, row)
		}
	}
	return out, nil
}

// SetProductQty sets stock of a simple product.
func (r *InventoryRepo) SetProductQty(productID string, qty int) error {
	res, err := r.db.Exec(`UPDATE products SET stock_quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, qty, productID)
	if err != nil {
		return err
	}
	return expectOne(res)
}

func (r *InventoryRepo) SetVariantQty(productID, variantID string, qty int) error {
	res, err := r.db.Exec(`UPDATE variants SET stock_quantity = ? WHERE id = ? AND product_id = ?`, qty, variantID, productID)
	if err != nil {
		return err
	}
	return expectOne(res)
}
