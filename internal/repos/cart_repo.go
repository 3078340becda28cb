package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"vitrina/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	} else if err != sql.ErrNoRows {
		return "", err
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,version,updated_at) VALUES(?,?,0,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Load returns the cart lines in insertion order and the cart version that
// a later Save must present.
func (r *CartRepo) Load(cartID string) ([]domain.CartLine, int, error) {
	var version int
	if err := r.db.Get(&version, `SELECT version FROM carts WHERE id = ?`, cartID); err != nil {
		return nil, 0, err
	}
	lines := []domain.CartLine{}
	if err := r.db.Select(&lines, `
	  SELECT cart_item_id, product_id, variant_id, name, variant_title, image_url, quantity, unit_price
	  FROM cart_lines
	  WHERE cart_id = ?
	  ORDER BY position
	`, cartID); err != nil {
		return nil, 0, err
	}
	return lines, version, nil
}

// Save replaces the cart lines if the cart is still at version. Otherwise
// it returns ErrConflict and changes nothing.
func (r *CartRepo) Save(cartID string, version int, lines []domain.CartLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE carts SET version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		time.Now().Format(time.RFC3339), cartID, version)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	if _, err := tx.Exec(`DELETE FROM cart_lines WHERE cart_id = ?`, cartID); err != nil {
		return err
	}
	for i, l := range lines {
		if _, err := tx.Exec(`
			INSERT INTO cart_lines(cart_id,cart_item_id,product_id,variant_id,name,variant_title,image_url,quantity,unit_price,position)
			VALUES(?,?,?,?,?,?,?,?,?,?)
		`, cartID, l.CartItemID, l.ProductID, l.VariantID, l.Name, l.VariantTitle, l.ImageURL, l.Quantity, l.UnitPrice, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_lines WHERE cart_id = ?`, cartID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`UPDATE carts SET version = version + 1 WHERE id = ?`, cartID)
	return err
}
