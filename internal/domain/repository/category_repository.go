package repository

import (
	"context"

	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	// List devuelve todas las categorías por (sort_order asc nulls last, created_at asc).
	List(ctx context.Context) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
