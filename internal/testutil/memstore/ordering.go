package memstore

import (
	"context"
	"sync"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// OrderingTx simula la transacción de reordenamiento: serializa las llamadas,
// revierte los órdenes si fn falla y rechaza al "commit" órdenes duplicados en un
// alcance (como la restricción UNIQUE diferida de Postgres).
type OrderingTx struct {
	s  *Store
	mu sync.Mutex

	// BeforeCompareAndSet se invoca antes de cada update condicional; permite a un
	// test simular una escritura concurrente.
	BeforeCompareAndSet func()
}

// NewOrderingTx construye el runner sobre s.
func NewOrderingTx(s *Store) *OrderingTx {
	return &OrderingTx{s: s}
}

// RunOrdering implementa catalog.OrderingTxRunner.
func (t *OrderingTx) RunOrdering(_ context.Context, kind ordering.Kind, fn func(repository.OrderingRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.s.sortOrders(kind)
	if err := fn(orderingRepo{s: t.s, kind: kind, hook: t.BeforeCompareAndSet}); err != nil {
		t.s.restoreSortOrders(kind, snapshot)
		return err
	}
	if t.s.hasDuplicateOrders(kind) {
		t.s.restoreSortOrders(kind, snapshot)
		return domain.ErrConflict
	}
	return nil
}

// SetSortOrder fija el orden de una categoría o producto (preparación de tests).
func (s *Store) SetSortOrder(kind ordering.Kind, id string, order *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setOrderLocked(kind, id, order)
}

func (s *Store) sortOrders(kind ordering.Kind) map[string]*int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]*int{}
	switch kind {
	case ordering.Categories:
		for id, c := range s.categories {
			out[id] = copyInt(c.SortOrder)
		}
	case ordering.Products:
		for id, p := range s.products {
			out[id] = copyInt(p.SortOrder)
		}
	}
	return out
}

func (s *Store) restoreSortOrders(kind ordering.Kind, snapshot map[string]*int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range snapshot {
		s.setOrderLocked(kind, id, v)
	}
}

func (s *Store) hasDuplicateOrders(kind ordering.Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	type key struct {
		scope string
		order int
	}
	seen := map[key]bool{}
	check := func(scope string, v *int) bool {
		if v == nil {
			return false
		}
		k := key{scope, *v}
		if seen[k] {
			return true
		}
		seen[k] = true
		return false
	}
	switch kind {
	case ordering.Categories:
		for _, c := range s.categories {
			if check("", c.SortOrder) {
				return true
			}
		}
	case ordering.Products:
		for _, p := range s.products {
			if check(p.CategoryID, p.SortOrder) {
				return true
			}
		}
	}
	return false
}

func (s *Store) setOrderLocked(kind ordering.Kind, id string, v *int) {
	switch kind {
	case ordering.Categories:
		if c, ok := s.categories[id]; ok {
			c.SortOrder = copyInt(v)
			s.categories[id] = c
		}
	case ordering.Products:
		if p, ok := s.products[id]; ok {
			p.SortOrder = copyInt(v)
			s.products[id] = p
		}
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

type orderingRepo struct {
	s    *Store
	kind ordering.Kind
	hook func()
}

func (r orderingRepo) ScopeOf(_ context.Context, id string) (string, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	switch r.kind {
	case ordering.Categories:
		_, ok := r.s.categories[id]
		return "", ok, nil
	case ordering.Products:
		p, ok := r.s.products[id]
		return p.CategoryID, ok, nil
	}
	return "", false, nil
}

func (r orderingRepo) ListScope(_ context.Context, scope string) ([]ordering.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := []ordering.Item{}
	switch r.kind {
	case ordering.Categories:
		for _, c := range r.s.categories {
			items = append(items, ordering.Item{ID: c.ID, SortOrder: copyInt(c.SortOrder), CreatedAt: c.CreatedAt})
		}
	case ordering.Products:
		for _, p := range r.s.products {
			if p.CategoryID == scope {
				items = append(items, ordering.Item{ID: p.ID, SortOrder: copyInt(p.SortOrder), CreatedAt: p.CreatedAt})
			}
		}
	}
	ordering.Sort(items)
	return items, nil
}

func (r orderingRepo) SetSortOrder(_ context.Context, id string, order int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.setOrderLocked(r.kind, id, &order)
	return nil
}

func (r orderingRepo) CompareAndSetSortOrder(_ context.Context, id string, expected, next int) (bool, error) {
	if r.hook != nil {
		r.hook()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var cur *int
	switch r.kind {
	case ordering.Categories:
		cur = r.s.categories[id].SortOrder
	case ordering.Products:
		cur = r.s.products[id].SortOrder
	}
	if cur == nil || *cur != expected {
		return false, nil
	}
	r.s.setOrderLocked(r.kind, id, &next)
	return true, nil
}
