package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, category_id, name, description, composition, packing, sort_order, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto sin orden.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, category_id, name, name_key, description, composition, packing, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.CategoryID, p.Name, naming.Key(p.Name), p.Description, p.Composition, p.Packing,
		p.SortOrder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetByCategoryAndNameKey obtiene un producto por categoría y clave de nombre.
func (r *ProductRepo) GetByCategoryAndNameKey(ctx context.Context, categoryID, nameKey string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE category_id = $1 AND name_key = $2`, categoryID, nameKey)
}

// Update persiste los campos editables. sort_order solo cambia (a NULL) si cambia la categoría;
// el valor resultante se devuelve en p.SortOrder.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	var order *int
	err := r.q.QueryRow(ctx, `
		UPDATE products SET category_id = $2, name = $3, name_key = $4, description = $5, composition = $6,
			packing = $7, updated_at = $8,
			sort_order = CASE WHEN category_id IS DISTINCT FROM $2 THEN NULL ELSE sort_order END
		WHERE id = $1
		RETURNING sort_order`,
		p.ID, p.CategoryID, p.Name, naming.Key(p.Name), p.Description, p.Composition, p.Packing, p.UpdatedAt,
	).Scan(&order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	p.SortOrder = order
	return nil
}

// ListByCategory productos de una categoría en su orden manual.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT `+productColumns+` FROM products WHERE category_id = $1
		ORDER BY sort_order ASC NULLS LAST, created_at ASC, id ASC`, categoryID)
}

// ListAll todos los productos agrupados por el orden de su categoría.
func (r *ProductRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT p.id, p.category_id, p.name, p.description, p.composition, p.packing, p.sort_order, p.created_at, p.updated_at
		FROM products p JOIN categories c ON c.id = p.category_id
		ORDER BY c.sort_order ASC NULLS LAST, c.created_at ASC, c.id ASC,
			p.sort_order ASC NULLS LAST, p.created_at ASC, p.id ASC`)
}

// Delete elimina un producto por ID (imágenes en cascada).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count número de productos.
func (r *ProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Composition, &p.Packing,
		&p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
