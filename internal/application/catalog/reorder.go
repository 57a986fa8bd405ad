package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// Reorderer mueve un elemento una posición arriba/abajo dentro de su alcance.
//
// Todo ocurre en una sola transacción: listado con bloqueo de filas, normalización
// perezosa (si hay nulos o un único valor), y el intercambio como dos updates
// condicionales sobre el valor previo. Si cualquiera falla no queda nada escrito,
// así dos llamadas concurrentes no pueden dejar órdenes duplicados.
type Reorderer struct {
	tx  OrderingTxRunner
	log zerolog.Logger
}

// NewReorderer construye el caso de uso.
func NewReorderer(tx OrderingTxRunner, log zerolog.Logger) *Reorderer {
	return &Reorderer{tx: tx, log: log}
}

// Move devuelve moved=false sin error cuando el elemento ya está en el extremo
// (incluye alcances de 0 o 1 elementos). El llamador debe volver a leer la lista.
//
// Errores:
//   - domain.ErrNotFound   el elemento no existe.
//   - domain.ErrConflict   el alcance cambió durante la operación (rollback completo).
func (r *Reorderer) Move(ctx context.Context, kind ordering.Kind, id string, dir ordering.Direction) (bool, error) {
	if _, err := ordering.ParseDirection(string(dir)); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	moved := false
	err := r.tx.RunOrdering(ctx, kind, func(repo repository.OrderingRepository) error {
		scope, found, err := repo.ScopeOf(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrNotFound
		}

		items, err := repo.ListScope(ctx, scope)
		if err != nil {
			return err
		}
		if ordering.NeedsNormalization(items) {
			for _, a := range ordering.Normalize(items) {
				if err := repo.SetSortOrder(ctx, a.ID, a.SortOrder); err != nil {
					return fmt.Errorf("normalizar %s: %w", a.ID, err)
				}
			}
			r.log.Debug().Str("kind", string(kind)).Str("scope", scope).Int("items", len(items)).Msg("alcance normalizado")
			if items, err = repo.ListScope(ctx, scope); err != nil {
				return err
			}
		}

		swap, err := ordering.PlanMove(items, id, dir)
		switch {
		case errors.Is(err, ordering.ErrAtBoundary):
			return nil
		case errors.Is(err, ordering.ErrItemNotInScope):
			return domain.ErrConflict
		case err != nil:
			return err
		}

		ok, err := repo.CompareAndSetSortOrder(ctx, swap.MovedID, swap.MovedExpected, swap.TargetExpected)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		ok, err = repo.CompareAndSetSortOrder(ctx, swap.TargetID, swap.TargetExpected, swap.MovedExpected)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConflict
		}
		moved = true
		return nil
	})
	if err != nil {
		return false, err
	}
	r.log.Debug().Str("kind", string(kind)).Str("id", id).Str("direction", string(dir)).Bool("moved", moved).Msg("reordenamiento")
	return moved, nil
}
