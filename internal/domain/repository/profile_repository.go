package repository

import (
	"context"

	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
)

// ProfileFilter filtros del listado de perfiles (nil = sin filtro).
type ProfileFilter struct {
	Role     *entity.Role
	IsActive *bool
}

// ProfileRepository define el puerto de persistencia para Profile (DIP).
// Los Get* devuelven (nil, nil) si no existe.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, f ProfileFilter) ([]*entity.Profile, error)
	Delete(ctx context.Context, id string) error
	CountActive(ctx context.Context) (int, error)
}
