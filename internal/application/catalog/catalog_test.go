package catalog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
	"github.com/dailishaw/dailishaw-api/internal/testutil/memstore"
	"github.com/dailishaw/dailishaw-api/pkg/logger"
)

var t0 = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	store      *memstore.Store
	tx         *memstore.OrderingTx
	objects    *memstore.Objects
	categories *catalog.CategoryUseCase
	products   *catalog.ProductUseCase
	images     *catalog.ImageUseCase
	reorderer  *catalog.Reorderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	tx := memstore.NewOrderingTx(s)
	objs := memstore.NewObjects()
	log := logger.Nop()
	r := catalog.NewReorderer(tx, log)
	return &fixture{
		store:      s,
		tx:         tx,
		objects:    objs,
		categories: catalog.NewCategoryUseCase(s.Categories(), s.Images(), objs, r, log),
		products:   catalog.NewProductUseCase(s.Products(), s.Categories(), s.Images(), objs, r, log),
		images:     catalog.NewImageUseCase(s.Images(), s.Products(), objs, 1024, log),
		reorderer:  r,
	}
}

func intp(n int) *int { return &n }

// seedCategory inserta una categoría con fecha de creación controlada.
func (f *fixture) seedCategory(t *testing.T, id string, order *int, minute int) {
	t.Helper()
	at := t0.Add(time.Duration(minute) * time.Minute)
	require.NoError(t, f.store.Categories().Create(context.Background(), &entity.Category{
		ID: id, Name: "Cat " + id, SortOrder: order, CreatedAt: at, UpdatedAt: at,
	}))
}

func (f *fixture) seedProduct(t *testing.T, id, categoryID string, order *int, minute int) {
	t.Helper()
	at := t0.Add(time.Duration(minute) * time.Minute)
	require.NoError(t, f.store.Products().Create(context.Background(), &entity.Product{
		ID: id, CategoryID: categoryID, Name: "Prod " + id, SortOrder: order, CreatedAt: at, UpdatedAt: at,
	}))
}

func (f *fixture) categoryIDs(t *testing.T) []string {
	t.Helper()
	list, err := f.categories.List(context.Background())
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}

func (f *fixture) categoryOrder(t *testing.T, id string) *int {
	t.Helper()
	c, err := f.store.Categories().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.SortOrder
}

// ──────────────────────────────────────────────────────────────────────────────
// Reordenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_PrimerMovimientoNormalizaYMueve(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", nil, 0)
	f.seedCategory(t, "B", nil, 1)
	f.seedCategory(t, "C", nil, 2)

	moved, err := f.categories.Move(context.Background(), "C", ordering.Up)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"A", "C", "B"}, f.categoryIDs(t))
	assert.Equal(t, 0, *f.categoryOrder(t, "A"))
	assert.Equal(t, 1, *f.categoryOrder(t, "C"))
	assert.Equal(t, 2, *f.categoryOrder(t, "B"))
}

func TestMove_EnElExtremoDevuelveFalseSinError(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", intp(0), 0)
	f.seedCategory(t, "B", intp(1), 1)

	moved, err := f.categories.Move(context.Background(), "A", ordering.Up)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = f.categories.Move(context.Background(), "B", ordering.Down)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"A", "B"}, f.categoryIDs(t))
}

func TestMove_DosSubidasDesdeElUltimo(t *testing.T) {
	f := newFixture(t)
	for i, id := range []string{"A", "B", "C", "D"} {
		f.seedCategory(t, id, intp(i), i)
	}

	for i := 0; i < 2; i++ {
		moved, err := f.categories.Move(context.Background(), "D", ordering.Up)
		require.NoError(t, err)
		require.True(t, moved)
	}
	assert.Equal(t, []string{"A", "D", "B", "C"}, f.categoryIDs(t))
	assert.Equal(t, 1, *f.categoryOrder(t, "D"))
}

func TestMove_OrdenesRepetidosYNulosSeRenumeranAntesDeMover(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", intp(5), 0)
	f.seedCategory(t, "B", intp(5), 1)
	f.seedCategory(t, "C", nil, 2)

	moved, err := f.categories.Move(context.Background(), "C", ordering.Up)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 0, *f.categoryOrder(t, "A"))
	assert.Equal(t, 1, *f.categoryOrder(t, "C"))
	assert.Equal(t, 2, *f.categoryOrder(t, "B"))
	assert.Equal(t, []string{"A", "C", "B"}, f.categoryIDs(t))
}

func TestMove_AlcanceDeUnSoloElemento(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "solo", nil, 0)

	for _, dir := range []ordering.Direction{ordering.Up, ordering.Down} {
		moved, err := f.categories.Move(context.Background(), "solo", dir)
		require.NoError(t, err)
		assert.False(t, moved)
	}
}

func TestMove_NoExiste(t *testing.T) {
	f := newFixture(t)
	_, err := f.categories.Move(context.Background(), "fantasma", ordering.Up)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMove_DireccionInvalida(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", nil, 0)
	_, err := f.categories.Move(context.Background(), "A", ordering.Direction("left"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMove_IdaYVueltaRestauraElOrden(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", intp(0), 0)
	f.seedCategory(t, "B", intp(1), 1)
	f.seedCategory(t, "C", intp(2), 2)

	_, err := f.categories.Move(context.Background(), "B", ordering.Down)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, f.categoryIDs(t))

	_, err = f.categories.Move(context.Background(), "B", ordering.Up)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, f.categoryIDs(t))
}

func TestMove_HuecosTrasBorradoSeRespetan(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", intp(0), 0)
	f.seedCategory(t, "B", intp(1), 1)
	f.seedCategory(t, "C", intp(2), 2)
	require.NoError(t, f.categories.Delete(context.Background(), "B"))

	assert.Equal(t, 0, *f.categoryOrder(t, "A"), "borrar no renumera")
	assert.Equal(t, 2, *f.categoryOrder(t, "C"))

	moved, err := f.categories.Move(context.Background(), "C", ordering.Up)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 0, *f.categoryOrder(t, "C"))
	assert.Equal(t, 2, *f.categoryOrder(t, "A"))
}

func TestMove_ConflictoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "A", intp(0), 0)
	f.seedCategory(t, "B", intp(1), 1)
	f.seedCategory(t, "C", intp(2), 2)

	calls := 0
	f.tx.BeforeCompareAndSet = func() {
		calls++
		if calls == 2 {
			// escritura concurrente sobre el vecino entre los dos updates
			f.store.SetSortOrder(ordering.Categories, "A", intp(9))
		}
	}

	moved, err := f.categories.Move(context.Background(), "B", ordering.Up)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, moved)
	assert.Equal(t, 1, *f.categoryOrder(t, "B"), "el primer update se deshace")
	assert.Equal(t, 0, *f.categoryOrder(t, "A"))
}

func TestMove_ConcurrenteNoDuplicaOrdenes(t *testing.T) {
	f := newFixture(t)
	ids := []string{"A", "B", "C", "D", "E"}
	for i, id := range ids {
		f.seedCategory(t, id, nil, i)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir := ordering.Up
			if i%2 == 0 {
				dir = ordering.Down
			}
			_, _ = f.categories.Move(context.Background(), ids[i%len(ids)], dir)
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, id := range ids {
		o := f.categoryOrder(t, id)
		require.NotNil(t, o)
		assert.False(t, seen[*o], "orden duplicado %d", *o)
		seen[*o] = true
	}
}

func TestMove_ProductosSoloAfectanSuCategoria(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedCategory(t, "cat2", nil, 1)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	f.seedProduct(t, "p2", "cat1", nil, 1)
	f.seedProduct(t, "q1", "cat2", nil, 2)

	moved, err := f.products.Move(context.Background(), "p2", ordering.Up)
	require.NoError(t, err)
	assert.True(t, moved)

	list, err := f.products.List(context.Background(), "cat1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "p1", list[1].ID)

	q, err := f.store.Products().GetByID(context.Background(), "q1")
	require.NoError(t, err)
	assert.Nil(t, q.SortOrder, "otra categoría no se normaliza")
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías y productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicadoSinMayusculas(t *testing.T) {
	f := newFixture(t)
	c, err := f.categories.Create(context.Background(), dto.CategoryRequest{Name: "  Antibióticos  "})
	require.NoError(t, err)
	assert.Equal(t, "Antibióticos", c.Name)
	assert.Nil(t, c.SortOrder, "se crea sin orden")

	_, err = f.categories.Create(context.Background(), dto.CategoryRequest{Name: "ANTIBIÓTICOS"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = f.categories.Create(context.Background(), dto.CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_ValidaCategoriaYNombre(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)

	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{CategoryID: "nope", Name: "Amoxil"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := f.products.Create(context.Background(), dto.CreateProductRequest{CategoryID: "cat1", Name: "Amoxil", Packing: "10x10"})
	require.NoError(t, err)
	assert.Equal(t, "10x10", p.Packing)

	_, err = f.products.Create(context.Background(), dto.CreateProductRequest{CategoryID: "cat1", Name: "amoxil"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_CambioDeCategoriaQuitaElOrden(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedCategory(t, "cat2", nil, 1)
	f.seedProduct(t, "p1", "cat1", intp(0), 0)

	target := "cat2"
	out, err := f.products.Update(context.Background(), "p1", dto.UpdateProductRequest{CategoryID: &target})
	require.NoError(t, err)
	assert.Equal(t, "cat2", out.CategoryID)
	assert.Nil(t, out.SortOrder)
}

// afterRead ejecuta onRead una vez, justo después de que GetByID devuelve.
type afterRead struct {
	repository.ProductRepository
	onRead func()
}

func (a *afterRead) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := a.ProductRepository.GetByID(ctx, id)
	if hook := a.onRead; hook != nil {
		a.onRead = nil
		hook()
	}
	return p, err
}

func TestProductUpdate_NoPisaUnMovimientoConcurrente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", intp(0), 0)
	f.seedProduct(t, "p2", "cat1", intp(1), 1)

	repo := &afterRead{ProductRepository: f.store.Products()}
	repo.onRead = func() {
		moved, err := f.products.Move(ctx, "p2", ordering.Up)
		require.NoError(t, err)
		require.True(t, moved)
	}
	uc := catalog.NewProductUseCase(repo, f.store.Categories(), f.store.Images(), f.objects, f.reorderer, logger.Nop())

	desc := "nueva"
	out, err := uc.Update(ctx, "p2", dto.UpdateProductRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "nueva", out.Description)
	require.NotNil(t, out.SortOrder)
	assert.Equal(t, 0, *out.SortOrder)

	p1, err := f.store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	p2, err := f.store.Products().GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, *p1.SortOrder)
	assert.Equal(t, 0, *p2.SortOrder)
	assert.Equal(t, "nueva", p2.Description)
}

func TestCategoryDelete_BorraProductosEImagenes(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	img, err := f.images.Upload(context.Background(), "p1", "foto.png", pngBytes())
	require.NoError(t, err)
	require.Equal(t, 1, f.objects.Len())

	require.NoError(t, f.categories.Delete(context.Background(), "cat1"))

	p, err := f.store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
	gone, err := f.store.Images().GetByID(context.Background(), img.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	assert.Equal(t, 0, f.objects.Len())
}

func TestCategoryDelete_FalloDeStorageNoImpideBorrar(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	_, err := f.images.Upload(context.Background(), "p1", "foto.png", pngBytes())
	require.NoError(t, err)

	f.objects.FailDelete = true
	require.NoError(t, f.categories.Delete(context.Background(), "cat1"))
	_, err = f.categories.GetByID(context.Background(), "cat1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Imágenes
// ──────────────────────────────────────────────────────────────────────────────

func pngBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
}

func TestImageUpload_Valida(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	ctx := context.Background()

	_, err := f.images.Upload(ctx, "p1", "vacio.png", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.images.Upload(ctx, "p1", "notas.txt", []byte("hola mundo, esto no es una imagen"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedMedia)

	_, err = f.images.Upload(ctx, "p1", "grande.png", append(pngBytes(), make([]byte, 2048)...))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = f.images.Upload(ctx, "nope", "foto.png", pngBytes())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.objects.Len())
}

func TestImageUpload_GuardaObjetoYFila(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	ctx := context.Background()

	img, err := f.images.Upload(ctx, "p1", "Foto.PNG", pngBytes())
	require.NoError(t, err)
	assert.Contains(t, img.URL, "products/p1/")
	assert.Equal(t, 1, f.objects.Len())

	list, err := f.images.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	p, err := f.products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p.Images, 1)

	require.NoError(t, f.images.Delete(ctx, img.ID))
	assert.Equal(t, 0, f.objects.Len())
}

func TestImageUpload_FalloDeStorage(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t, "cat1", nil, 0)
	f.seedProduct(t, "p1", "cat1", nil, 0)
	f.objects.FailUpload = true

	_, err := f.images.Upload(context.Background(), "p1", "foto.png", pngBytes())
	assert.ErrorIs(t, err, memstore.ErrStorageDown)

	list, err := f.images.List(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
