package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

// ProductImageRepo implementación del puerto ProductImageRepository sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

func (r *ProductImageRepo) Create(ctx context.Context, img *entity.ProductImage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO product_images (id, product_id, storage_path, url, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		img.ID, img.ProductID, img.StoragePath, img.URL, img.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product image: %w", err)
	}
	return nil
}

func (r *ProductImageRepo) GetByID(ctx context.Context, id string) (*entity.ProductImage, error) {
	var img entity.ProductImage
	err := r.q.QueryRow(ctx,
		`SELECT id, product_id, storage_path, url, created_at FROM product_images WHERE id = $1`, id,
	).Scan(&img.ID, &img.ProductID, &img.StoragePath, &img.URL, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product image: %w", err)
	}
	return &img, nil
}

func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error) {
	return r.list(ctx, `
		SELECT id, product_id, storage_path, url, created_at FROM product_images
		WHERE product_id = $1 ORDER BY created_at ASC, id ASC`, productID)
}

// ListByCategory imágenes de todos los productos de una categoría (para limpiar el storage al borrarla).
func (r *ProductImageRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.ProductImage, error) {
	return r.list(ctx, `
		SELECT i.id, i.product_id, i.storage_path, i.url, i.created_at
		FROM product_images i JOIN products p ON p.id = i.product_id
		WHERE p.category_id = $1 ORDER BY i.created_at ASC, i.id ASC`, categoryID)
}

func (r *ProductImageRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductImageRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ProductImage, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.StoragePath, &img.URL, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		list = append(list, &img)
	}
	return list, rows.Err()
}
