package repository

import (
	"context"

	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
)

// OrderingRepository acceso al orden manual de un alcance (tabla + columna de alcance).
// Las implementaciones transaccionales bloquean las filas del alcance al listarlas.
type OrderingRepository interface {
	// ScopeOf devuelve el alcance del elemento ("" para alcance global). found=false si no existe.
	ScopeOf(ctx context.Context, id string) (scope string, found bool, err error)
	// ListScope lista el alcance por (sort_order asc nulls last, created_at asc).
	ListScope(ctx context.Context, scope string) ([]ordering.Item, error)
	// SetSortOrder asignación incondicional (normalización).
	SetSortOrder(ctx context.Context, id string, order int) error
	// CompareAndSetSortOrder asigna next solo si el valor actual es expected. ok=false si no coincidió.
	CompareAndSetSortOrder(ctx context.Context, id string, expected, next int) (ok bool, err error)
}
