package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ catalog.OrderingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunOrdering inicia una transacción, ejecuta fn con el repo de orden de kind atado a
// la tx y hace Commit o Rollback. Las constraints UNIQUE de sort_order son diferidas:
// una violación aparece en el commit y se reporta como domain.ErrConflict.
func (r *TxRunner) RunOrdering(ctx context.Context, kind ordering.Kind, fn func(repo repository.OrderingRepository) error) error {
	table, ok := orderingTables[kind]
	if !ok {
		return fmt.Errorf("ordering: colección desconocida %q", kind)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderingRepository(tx, table)); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
