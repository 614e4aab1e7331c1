package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/juhyeon1114/jpashop/internal/entity"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Save persists the aggregate (order, lines, delivery), applies the stock
// debits, and writes the outbox row in one transaction. Stock is debited
// with a guarded UPDATE so two racing orders cannot oversell a row; a
// guard miss rolls the whole order back.
func (r *MySQLOrderRepo) Save(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO orders (id, member_id, status, ordered_at)
VALUES (?,?,?,?)`,
		o.ID, o.MemberID, string(o.Status), o.OrderedAt,
	); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO deliveries (id, order_id, city, street, zipcode, status)
VALUES (?,?,?,?,?,?)`,
		o.Delivery.ID, o.ID,
		o.Delivery.Address.City, o.Delivery.Address.Street, o.Delivery.Address.Zipcode,
		string(o.Delivery.Status),
	); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	for _, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO order_lines (id, order_id, item_id, order_price, count)
VALUES (?,?,?,?,?)`,
			l.ID, o.ID, l.ItemID, l.OrderPrice, l.Count,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}

		res, err := tx.ExecContext(ctx, `
UPDATE items SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			l.Count, l.ItemID, l.Count,
		)
		if err != nil {
			return fmt.Errorf("debit stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("item %s: %w", l.ItemID, domain.ErrInsufficientStock)
		}
	}

	if err := insertOutbox(ctx, tx, "order.placed.v1", usecase.OrderPlacedMsg{
		OrderID:    o.ID,
		MemberID:   o.MemberID,
		TotalPrice: o.TotalPrice(),
		PlacedAt:   o.OrderedAt,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

// MarkCancelled flips ORDER to CANCEL with a guarded UPDATE, restocks
// every line, and writes the outbox row in one transaction. A guard miss
// means the order was already cancelled (or never existed).
func (r *MySQLOrderRepo) MarkCancelled(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE orders SET status = ? WHERE id = ? AND status = ?`,
		string(domain.StatusCancelled), o.ID, string(domain.StatusOrdered),
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("order %s: %w", o.ID, domain.ErrAlreadyCancelled)
	}

	for _, l := range o.Lines {
		if _, err := tx.ExecContext(ctx, `
UPDATE items SET stock = stock + ? WHERE id = ?`,
			l.Count, l.ItemID,
		); err != nil {
			return fmt.Errorf("restock item %s: %w", l.ItemID, err)
		}
	}

	if err := insertOutbox(ctx, tx, "order.cancelled.v1", usecase.OrderCancelledMsg{
		OrderID:  o.ID,
		MemberID: o.MemberID,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT o.id, o.member_id, o.status, o.ordered_at,
       d.id, d.city, d.street, d.zipcode, d.status
FROM orders o
JOIN deliveries d ON d.order_id = o.id
WHERE o.id = ?`, id)

	o, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	if o.Lines, err = r.loadLines(ctx, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// Search loads matching orders with lines and delivery; use
// SearchWithMemberAndDelivery for list views that also need the member.
func (r *MySQLOrderRepo) Search(ctx context.Context, s usecase.OrderSearch) ([]*domain.Order, error) {
	where, args := buildOrderSearch(s)
	q := `
SELECT o.id, o.member_id, o.status, o.ordered_at,
       d.id, d.city, d.street, d.zipcode, d.status
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.order_id = o.id` + where + fmt.Sprintf(" LIMIT %d", searchLimit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One line query per order; callers that only render list rows should
	// prefer the joined or projected variants.
	for _, o := range out {
		if o.Lines, err = r.loadLines(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// SearchWithMemberAndDelivery fetches orders, member names, and deliveries
// in a single round trip. Lines are not loaded.
func (r *MySQLOrderRepo) SearchWithMemberAndDelivery(ctx context.Context, s usecase.OrderSearch) ([]usecase.OrderWithMember, error) {
	where, args := buildOrderSearch(s)
	q := `
SELECT o.id, o.member_id, o.status, o.ordered_at,
       d.id, d.city, d.street, d.zipcode, d.status,
       m.name
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.order_id = o.id` + where + fmt.Sprintf(" LIMIT %d", searchLimit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.OrderWithMember
	for rows.Next() {
		var o domain.Order
		var name string
		if err := rows.Scan(
			&o.ID, &o.MemberID, &o.Status, &o.OrderedAt,
			&o.Delivery.ID, &o.Delivery.Address.City, &o.Delivery.Address.Street,
			&o.Delivery.Address.Zipcode, &o.Delivery.Status,
			&name,
		); err != nil {
			return nil, err
		}
		out = append(out, usecase.OrderWithMember{Order: &o, MemberName: name})
	}
	return out, rows.Err()
}

// UpdateDeliveryStatus applies a status update from the shipping feed.
// COMP is terminal: the guard keeps a late or replayed READY/SHIPPED
// event from reopening a completed delivery.
func (r *MySQLOrderRepo) UpdateDeliveryStatus(ctx context.Context, orderID string, st domain.DeliveryStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE deliveries SET status = ? WHERE order_id = ? AND status <> ?`,
		string(st), orderID, string(domain.DeliveryCompleted),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Already COMP, a same-value replay, or no such delivery.
		var one int
		err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM deliveries WHERE order_id = ?`, orderID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delivery for order %s: %w", orderID, domain.ErrNotFound)
		}
		return err
	}
	return nil
}

func (r *MySQLOrderRepo) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, item_id, order_price, count
FROM order_lines WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ID, &l.ItemID, &l.OrderPrice, &l.Count); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID, &o.MemberID, &o.Status, &o.OrderedAt,
		&o.Delivery.ID, &o.Delivery.Address.City, &o.Delivery.Address.Street,
		&o.Delivery.Address.Zipcode, &o.Delivery.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func insertOutbox(ctx context.Context, tx *sql.Tx, channel string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO outbox (channel, payload, status, retry_count, next_attempt_at, created_at)
VALUES (?, ?, 'PENDING', 0, NOW(), NOW())`,
		channel, payload,
	); err != nil {
		return fmt.Errorf("insert outbox: %w", err)
	}
	return nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
