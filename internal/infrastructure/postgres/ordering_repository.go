package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.OrderingRepository = (*OrderingRepo)(nil)

// OrderingTable tabla ordenable y su columna de alcance ("" = alcance global).
type OrderingTable struct {
	Name        string
	ScopeColumn string
}

var orderingTables = map[ordering.Kind]OrderingTable{
	ordering.Categories: {Name: "categories"},
	ordering.Products:   {Name: "products", ScopeColumn: "category_id"},
}

// OrderingRepo acceso a sort_order de una tabla. Pensado para usarse dentro de una tx.
type OrderingRepo struct {
	q     Querier
	table OrderingTable
}

// NewOrderingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderingRepository(q Querier, table OrderingTable) *OrderingRepo {
	return &OrderingRepo{q: q, table: table}
}

// ScopeOf devuelve el valor de la columna de alcance del elemento.
func (r *OrderingRepo) ScopeOf(ctx context.Context, id string) (string, bool, error) {
	scopeExpr := "''"
	if r.table.ScopeColumn != "" {
		scopeExpr = r.table.ScopeColumn + "::text"
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, scopeExpr, r.table.Name)
	var scope string
	if err := r.q.QueryRow(ctx, query, id).Scan(&scope); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("scope of %s: %w", r.table.Name, err)
	}
	return scope, true, nil
}

// ListScope lista y bloquea (FOR UPDATE) las filas del alcance.
func (r *OrderingRepo) ListScope(ctx context.Context, scope string) ([]ordering.Item, error) {
	query := fmt.Sprintf(`SELECT id, sort_order, created_at FROM %s`, r.table.Name)
	var args []any
	if r.table.ScopeColumn != "" {
		query += fmt.Sprintf(` WHERE %s = $1`, r.table.ScopeColumn)
		args = append(args, scope)
	}
	query += ` ORDER BY sort_order ASC NULLS LAST, created_at ASC, id ASC FOR UPDATE`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scope %s: %w", r.table.Name, err)
	}
	defer rows.Close()
	var items []ordering.Item
	for rows.Next() {
		var it ordering.Item
		if err := rows.Scan(&it.ID, &it.SortOrder, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table.Name, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// SetSortOrder asignación incondicional.
func (r *OrderingRepo) SetSortOrder(ctx context.Context, id string, order int) error {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $2, updated_at = now() WHERE id = $1`, r.table.Name)
	if _, err := r.q.Exec(ctx, query, id, order); err != nil {
		return fmt.Errorf("set sort_order %s: %w", r.table.Name, err)
	}
	return nil
}

// CompareAndSetSortOrder actualiza solo si sort_order sigue valiendo expected.
func (r *OrderingRepo) CompareAndSetSortOrder(ctx context.Context, id string, expected, next int) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET sort_order = $3, updated_at = now() WHERE id = $1 AND sort_order = $2`, r.table.Name)
	cmd, err := r.q.Exec(ctx, query, id, expected, next)
	if err != nil {
		return false, fmt.Errorf("cas sort_order %s: %w", r.table.Name, err)
	}
	return cmd.RowsAffected() == 1, nil
}
