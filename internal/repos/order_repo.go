package repos

import (
	"github.com/jmoiron/sqlx"

	"vitrina/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderLineRow struct {
	LineNo    int     `db:"line_no" json:"line_no"`
	ProductID string  `db:"product_id" json:"product_id"`
	VariantID string  `db:"variant_id" json:"variant_id,omitempty"`
	Name      string  `db:"name" json:"name"`
	Quantity  int     `db:"quantity" json:"quantity"`
	UnitPrice float64 `db:"unit_price" json:"unit_price"`
}

// Create stores the order header and its lines in one transaction.
func (r *OrderRepo) Create(o domain.Order, lines []OrderLineRow) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, session_id, customer_name, total, message, link, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, 'SENT', CURRENT_TIMESTAMP)
	`, o.ID, o.SessionID, o.CustomerName, o.Total, o.Message, o.Link); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_lines(order_id, line_no, product_id, variant_id, name, quantity, unit_price)
		  VALUES(?, ?, ?, ?, ?, ?, ?)
		`, o.ID, l.LineNo, l.ProductID, l.VariantID, l.Name, l.Quantity, l.UnitPrice); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const orderCols = `id, COALESCE(session_id,'') AS session_id, customer_name, total, message, link, status, created_at`

func (r *OrderRepo) Get(orderID string) (domain.Order, []OrderLineRow, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	items := []OrderLineRow{}
	if err := r.db.Select(&items, `
		SELECT line_no, product_id, variant_id, name, quantity, unit_price
		FROM order_lines
		WHERE order_id = ?
		ORDER BY line_no
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}
	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC, id
		LIMIT ?
	`, limit)
	return out, err
}

// ListBySession returns the orders sent from one shopper session.
func (r *OrderRepo) ListBySession(sessionID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC, id
	`, sessionID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return expectOne(res)
}
