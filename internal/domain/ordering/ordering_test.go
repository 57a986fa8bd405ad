package ordering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
)

var base = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func ptr(n int) *int { return &n }

func item(id string, order *int, minute int) ordering.Item {
	return ordering.Item{ID: id, SortOrder: order, CreatedAt: base.Add(time.Duration(minute) * time.Minute)}
}

// ids devuelve los ids en el orden efectivo de la lista.
func ids(items []ordering.Item) []string {
	cp := make([]ordering.Item, len(items))
	copy(cp, items)
	ordering.Sort(cp)
	out := make([]string, len(cp))
	for i, it := range cp {
		out[i] = it.ID
	}
	return out
}

func contiguous(n int) []ordering.Item {
	out := make([]ordering.Item, n)
	for i := 0; i < n; i++ {
		out[i] = item(string(rune('A'+i)), ptr(i), i)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Sort / NeedsNormalization / Normalize
// ──────────────────────────────────────────────────────────────────────────────

func TestSort_NulosAlFinalYDesempatePorFecha(t *testing.T) {
	items := []ordering.Item{
		item("nulo-viejo", nil, 0),
		item("b", ptr(1), 5),
		item("a2", ptr(0), 3),
		item("a1", ptr(0), 1),
		item("nulo-nuevo", nil, 9),
	}
	assert.Equal(t, []string{"a1", "a2", "b", "nulo-viejo", "nulo-nuevo"}, ids(items))
}

func TestNeedsNormalization(t *testing.T) {
	assert.False(t, ordering.NeedsNormalization(nil), "alcance vacío no se normaliza")
	assert.False(t, ordering.NeedsNormalization(contiguous(3)))
	assert.False(t, ordering.NeedsNormalization([]ordering.Item{item("a", ptr(0), 0), item("b", ptr(7), 1)}),
		"los huecos se toleran")
	assert.True(t, ordering.NeedsNormalization([]ordering.Item{item("a", ptr(0), 0), item("b", nil, 1)}))
	assert.True(t, ordering.NeedsNormalization([]ordering.Item{item("a", ptr(4), 0), item("b", ptr(4), 1)}))
	assert.True(t, ordering.NeedsNormalization([]ordering.Item{item("solo", ptr(3), 0)}),
		"un único valor distinto cuenta como sin inicializar")
}

// Escenario: A(5), B(5), C(null) → 0,1,2 por (orden, fecha).
func TestNormalize_RenumeraPorOrdenYFecha(t *testing.T) {
	items := []ordering.Item{
		item("C", nil, 0),
		item("B", ptr(5), 2),
		item("A", ptr(5), 1),
	}
	got := ordering.Normalize(items)
	assert.Equal(t, []ordering.Assignment{
		{ID: "A", SortOrder: 0},
		{ID: "B", SortOrder: 1},
		{ID: "C", SortOrder: 2},
	}, got)
	assert.Nil(t, items[0].SortOrder, "Normalize no muta la entrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanMove
// ──────────────────────────────────────────────────────────────────────────────

func TestPlanMove_SubirIntercambiaConAnterior(t *testing.T) {
	for n := 3; n <= 6; n++ {
		for i := 1; i < n-1; i++ {
			items := contiguous(n)
			moved := items[i].ID
			prev := items[i-1].ID

			swap, err := ordering.PlanMove(items, moved, ordering.Up)
			require.NoError(t, err)
			a := swap.Assignments()
			after := apply(items, a[0], a[1])

			for _, it := range after {
				switch it.ID {
				case moved:
					assert.Equal(t, i-1, *it.SortOrder)
				case prev:
					assert.Equal(t, i, *it.SortOrder)
				default:
					orig := int(it.ID[0] - 'A')
					assert.Equal(t, orig, *it.SortOrder, "el resto no cambia")
				}
			}
		}
	}
}

func TestPlanMove_Extremos(t *testing.T) {
	items := contiguous(4)

	_, err := ordering.PlanMove(items, "A", ordering.Up)
	assert.ErrorIs(t, err, ordering.ErrAtBoundary)

	_, err = ordering.PlanMove(items, "D", ordering.Down)
	assert.ErrorIs(t, err, ordering.ErrAtBoundary)
}

func TestPlanMove_AlcanceDeUnoOVacio(t *testing.T) {
	one := contiguous(1)
	for _, dir := range []ordering.Direction{ordering.Up, ordering.Down} {
		_, err := ordering.PlanMove(one, "A", dir)
		assert.ErrorIs(t, err, ordering.ErrAtBoundary)
	}
	_, err := ordering.PlanMove(nil, "A", ordering.Up)
	assert.ErrorIs(t, err, ordering.ErrItemNotInScope)
}

func TestPlanMove_DireccionInvalida(t *testing.T) {
	_, err := ordering.PlanMove(contiguous(2), "A", ordering.Direction("left"))
	assert.ErrorIs(t, err, ordering.ErrInvalidDirection)

	_, err = ordering.ParseDirection("sideways")
	assert.ErrorIs(t, err, ordering.ErrInvalidDirection)

	d, err := ordering.ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, ordering.Down, d)
}

// A(0) B(1) C(2): bajar B → A C B; subir B → A B C.
func TestPlanMove_EscenarioIdaYVuelta(t *testing.T) {
	items := contiguous(3)

	swap, err := ordering.PlanMove(items, "B", ordering.Down)
	require.NoError(t, err)
	a := swap.Assignments()
	items = apply(items, a[0], a[1])
	assert.Equal(t, []string{"A", "C", "B"}, ids(items))

	swap, err = ordering.PlanMove(items, "B", ordering.Up)
	require.NoError(t, err)
	a = swap.Assignments()
	items = apply(items, a[0], a[1])
	assert.Equal(t, []string{"A", "B", "C"}, ids(items))
}

func TestPlanMove_SinNormalizarFalla(t *testing.T) {
	items := []ordering.Item{item("A", ptr(0), 0), item("B", nil, 1)}
	_, err := ordering.PlanMove(items, "B", ordering.Up)
	assert.Error(t, err)
}

// apply copia items con las asignaciones aplicadas.
func apply(items []ordering.Item, assignments ...ordering.Assignment) []ordering.Item {
	byID := make(map[string]int, len(assignments))
	for _, a := range assignments {
		byID[a.ID] = a.SortOrder
	}
	out := make([]ordering.Item, len(items))
	for i, it := range items {
		out[i] = it
		if v, ok := byID[it.ID]; ok {
			out[i].SortOrder = &v
		}
	}
	return out
}
