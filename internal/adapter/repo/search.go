package repo

import (
	"strings"

	"github.com/juhyeon1114/jpashop/internal/usecase"
)

const searchLimit = 1000

// buildOrderSearch assembles the WHERE clause for an order search as a
// list of optional predicates joined with AND. Each predicate is toggled
// by the presence of its filter field, so zero, one, or both filters all
// produce well-formed SQL. Column aliases: o = orders, m = members.
func buildOrderSearch(s usecase.OrderSearch) (string, []any) {
	var preds []string
	var args []any

	if s.Status != nil {
		preds = append(preds, "o.status = ?")
		args = append(args, string(*s.Status))
	}
	if s.MemberName != "" {
		preds = append(preds, "m.name LIKE ?")
		args = append(args, "%"+s.MemberName+"%")
	}

	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}
