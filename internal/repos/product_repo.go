package repos

import (
	"github.com/jmoiron/sqlx"

	"vitrina/internal/domain"
	"vitrina/internal/variants"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
    id, COALESCE(category_id,'') AS category_id, name, description, image_url, price,
    stock_quantity, track_inventory, active, options_json,
    created_at, COALESCE(updated_at,'') AS updated_at`

const variantCols = `
    id, product_id, title, options_json, price, compare_price, sku,
    stock_quantity, image_url, is_active, position`

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	var cat any
	if p.CategoryID != "" {
		cat = p.CategoryID
	}
	_, err := r.db.Exec(`
		INSERT INTO products(id,category_id,name,description,image_url,price,stock_quantity,track_inventory,active,options_json,created_at)
		VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, cat, p.Name, p.Description, p.ImageURL, p.Price, p.StockQuantity, p.TrackInventory, p.Active, p.Options)
	return err
}

// Get loads a product together with its variants, in position order.
func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	if err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	vs, err := r.Variants(id)
	if err != nil {
		return domain.Product{}, err
	}
	p.Variants = vs
	return p, nil
}

func (r *ProductRepo) Variants(productID string) ([]domain.Variant, error) {
	vs := []domain.Variant{}
	err := r.db.Select(&vs, `SELECT `+variantCols+` FROM variants WHERE product_id = ? ORDER BY position`, productID)
	return vs, err
}

// List returns active products, newest first, with their variants.
func (r *ProductRepo) List(categoryID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if categoryID != "" {
		where += ` AND category_id = ?`
		args = append(args, categoryID)
	}
	args = append(args, limit, offset)

	var out []domain.Product
	if err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC, id
	  LIMIT ? OFFSET ?`, args...); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, len(out))
	for i, p := range out {
		ids[i] = p.ID
	}
	query, qargs, err := sqlx.In(`SELECT `+variantCols+` FROM variants WHERE product_id IN (?) ORDER BY product_id, position`, ids)
	if err != nil {
		return nil, err
	}
	var vs []domain.Variant
	if err := r.db.Select(&vs, r.db.Rebind(query), qargs...); err != nil {
		return nil, err
	}
	byProduct := map[string][]domain.Variant{}
	for _, v := range vs {
		byProduct[v.ProductID] = append(byProduct[v.ProductID], v)
	}
	for i := range out {
		out[i].Variants = byProduct[out[i].ID]
	}
	return out, nil
}

// ReplaceVariants stores a recomputed option list and its variant set in
// one transaction. Variants missing from vs are deleted.
func (r *ProductRepo) ReplaceVariants(productID string, opts domain.OptionList, vs []domain.Variant) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE products SET options_json = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, opts, productID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM variants WHERE product_id = ?`, productID); err != nil {
		return err
	}
	if err := insertVariants(tx, productID, vs); err != nil {
		return err
	}
	return tx.Commit()
}

func insertVariants(tx *sqlx.Tx, productID string, vs []domain.Variant) error {
	for i, v := range vs {
		if _, err := tx.Exec(`
			INSERT INTO variants(id,product_id,option_key,title,options_json,price,compare_price,sku,stock_quantity,image_url,is_active,position)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?)
		`, v.ID, productID, variants.Key(v.Options), v.Title, v.Options, v.Price, v.ComparePrice, v.SKU,
			v.StockQuantity, v.ImageURL, v.IsActive, i); err != nil {
			return err
		}
	}
	return nil
}

// UpdateVariant writes the commercial fields of one variant.
func (r *ProductRepo) UpdateVariant(v domain.Variant) error {
	res, err := r.db.Exec(`
		UPDATE variants
		SET price = ?, compare_price = ?, sku = ?, stock_quantity = ?, image_url = ?, is_active = ?
		WHERE id = ? AND product_id = ?
	`, v.Price, v.ComparePrice, v.SKU, v.StockQuantity, v.ImageURL, v.IsActive, v.ID, v.ProductID)
	if err != nil {
		return err
	}
	return expectOne(res)
}

// UpdateScalars writes the fields a simple product prices and stocks itself with.
func (r *ProductRepo) UpdateScalars(p domain.Product) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET price = ?, stock_quantity = ?, track_inventory = ?, active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Price, p.StockQuantity, p.TrackInventory, p.Active, p.ID)
	if err != nil {
		return err
	}
	return expectOne(res)
}
