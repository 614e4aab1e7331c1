package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/juhyeon1114/jpashop/internal/usecase"
)

// MySQLSimpleOrderQuery selects only the columns the list view renders.
// Unlike the joined search on MySQLOrderRepo, nothing here materializes an
// order aggregate; the projection is scoped at the query level.
type MySQLSimpleOrderQuery struct{ db *sql.DB }

func NewMySQLSimpleOrderQuery(db *sql.DB) *MySQLSimpleOrderQuery {
	return &MySQLSimpleOrderQuery{db: db}
}

func (q *MySQLSimpleOrderQuery) FindSimpleOrders(ctx context.Context) ([]usecase.SimpleOrderView, error) {
	rows, err := q.db.QueryContext(ctx, fmt.Sprintf(`
SELECT o.id, m.name, o.ordered_at, o.status, d.city, d.street, d.zipcode
FROM orders o
JOIN members m ON m.id = o.member_id
JOIN deliveries d ON d.order_id = o.id
LIMIT %d`, searchLimit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []usecase.SimpleOrderView
	for rows.Next() {
		var v usecase.SimpleOrderView
		if err := rows.Scan(
			&v.OrderID, &v.MemberName, &v.OrderedAt, &v.Status,
			&v.Address.City, &v.Address.Street, &v.Address.Zipcode,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

var _ usecase.SimpleOrderQuery = (*MySQLSimpleOrderQuery)(nil)
