package postgres

import (
	"fmt"
	"strings"

	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// logWhere arma el WHERE de un LogFilter sobre la columna de fecha indicada.
func logWhere(dateColumn string, f repository.LogFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("%s >= $%d", dateColumn, len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("%s <= $%d", dateColumn, len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
