package repository

import (
	"context"

	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCategoryAndNameKey(ctx context.Context, categoryID, nameKey string) (*entity.Product, error)
	// Update persiste los campos editables. No escribe SortOrder: lo deja intacto, o en nil si cambia
	// la categoría, y devuelve el valor resultante en p.SortOrder.
	Update(ctx context.Context, p *entity.Product) error
	// ListByCategory ordena por (sort_order asc nulls last, created_at asc).
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// ProductImageRepository define el puerto de persistencia para ProductImage.
type ProductImageRepository interface {
	Create(ctx context.Context, img *entity.ProductImage) error
	GetByID(ctx context.Context, id string) (*entity.ProductImage, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductImage, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.ProductImage, error)
	Delete(ctx context.Context, id string) error
}
