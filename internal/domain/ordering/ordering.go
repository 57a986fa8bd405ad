// Package ordering implementa el orden manual (subir/bajar) de listas con alcance:
// categorías (alcance global) y productos (alcance = categoría).
//
// Los elementos se crean sin orden (SortOrder nil). La primera petición de
// reordenamiento normaliza el alcance completo a 0..N-1 y luego intercambia
// el elemento con su vecino. Borrar nunca renumera; los huecos se toleran.
package ordering

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrAtBoundary el elemento ya está en el extremo pedido. No es un error de
	// estado: la operación es un no-op y se reporta como fallida.
	ErrAtBoundary = errors.New("ordering: el elemento ya está en el extremo")
	// ErrItemNotInScope el id no pertenece a la lista recibida.
	ErrItemNotInScope = errors.New("ordering: el elemento no pertenece al alcance")
	// ErrInvalidDirection dirección distinta de up/down.
	ErrInvalidDirection = errors.New("ordering: dirección inválida")
)

// Kind colección ordenable.
type Kind string

const (
	Categories Kind = "categories" // alcance global
	Products   Kind = "products"   // alcance = categoría
)

// Direction sentido del movimiento.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection valida la dirección recibida del cliente.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Item vista mínima de un elemento ordenable.
type Item struct {
	ID        string
	SortOrder *int
	CreatedAt time.Time
}

// Assignment nuevo valor de orden para un elemento.
type Assignment struct {
	ID        string
	SortOrder int
}

// Swap intercambio de orden entre dos elementos adyacentes.
// Expected* son los valores previos, usados como guarda en la actualización condicional.
type Swap struct {
	MovedID        string
	MovedExpected  int
	TargetID       string
	TargetExpected int
}

// Assignments devuelve las dos asignaciones que materializan el intercambio.
func (s Swap) Assignments() [2]Assignment {
	return [2]Assignment{
		{ID: s.MovedID, SortOrder: s.TargetExpected},
		{ID: s.TargetID, SortOrder: s.MovedExpected},
	}
}

// Sort ordena in-place por (SortOrder asc, nulos al final, CreatedAt asc, ID asc).
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.SortOrder == nil && b.SortOrder != nil:
			return false
		case a.SortOrder != nil && b.SortOrder == nil:
			return true
		case a.SortOrder != nil && b.SortOrder != nil && *a.SortOrder != *b.SortOrder:
			return *a.SortOrder < *b.SortOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// NeedsNormalization true si algún orden es nulo o si todos comparten un único valor.
func NeedsNormalization(items []Item) bool {
	distinct := make(map[int]struct{}, len(items))
	for _, it := range items {
		if it.SortOrder == nil {
			return true
		}
		distinct[*it.SortOrder] = struct{}{}
	}
	return len(distinct) == 1
}

// Normalize asigna SortOrder = índice siguiendo el orden de Sort.
// No modifica items; devuelve las asignaciones a persistir.
func Normalize(items []Item) []Assignment {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	Sort(sorted)
	out := make([]Assignment, len(sorted))
	for i, it := range sorted {
		out[i] = Assignment{ID: it.ID, SortOrder: i}
	}
	return out
}

// PlanMove calcula el intercambio para mover id una posición en dir.
// items debe estar normalizado (sin nulos); se ordena una copia antes de buscar.
func PlanMove(items []Item, id string, dir Direction) (Swap, error) {
	if dir != Up && dir != Down {
		return Swap{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	Sort(sorted)

	current := -1
	for i, it := range sorted {
		if it.ID == id {
			current = i
			break
		}
	}
	if current < 0 {
		return Swap{}, ErrItemNotInScope
	}

	target := current - 1
	if dir == Down {
		target = current + 1
	}
	if target < 0 || target >= len(sorted) {
		return Swap{}, ErrAtBoundary
	}

	moved, other := sorted[current], sorted[target]
	if moved.SortOrder == nil || other.SortOrder == nil {
		return Swap{}, fmt.Errorf("ordering: alcance sin normalizar")
	}
	return Swap{
		MovedID:        moved.ID,
		MovedExpected:  *moved.SortOrder,
		TargetID:       other.ID,
		TargetExpected: *other.SortOrder,
	}, nil
}
