package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/naming"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías + orden manual.
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	images    repository.ProductImageRepository
	storage   ObjectStorage
	reorderer *Reorderer
	log       zerolog.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	repo repository.CategoryRepository,
	images repository.ProductImageRepository,
	storage ObjectStorage,
	reorderer *Reorderer,
	log zerolog.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, images: images, storage: storage, reorderer: reorderer, log: log}
}

// Create crea una categoría sin orden (SortOrder nil). Nombre único sin distinguir mayúsculas.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := naming.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNameKey(ctx, naming.Key(name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List devuelve las categorías en su orden manual.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// GetByID obtiene una categoría; ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Update renombra / cambia la descripción. No toca el orden.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := naming.Clean(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	other, err := uc.repo.GetByNameKey(ctx, naming.Key(name))
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != c.ID {
		return nil, domain.ErrDuplicate
	}
	c.Name = name
	c.Description = in.Description
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Delete elimina la categoría. Productos e imágenes se borran en cascada por FK;
// después se eliminan (best-effort) los objetos de imagen del almacenamiento.
// Las categorías restantes no se renumeran.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	imgs, err := uc.images.ListByCategory(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	removeObjects(ctx, uc.storage, uc.log, imgs)
	return nil
}

// Move sube/baja la categoría una posición. moved=false en los extremos.
func (uc *CategoryUseCase) Move(ctx context.Context, id string, dir ordering.Direction) (bool, error) {
	return uc.reorderer.Move(ctx, ordering.Categories, id, dir)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// removeObjects borra del almacenamiento los objetos de las imágenes. Un fallo solo se
// registra: las filas ya no existen y un objeto huérfano no rompe el catálogo.
func removeObjects(ctx context.Context, storage ObjectStorage, log zerolog.Logger, imgs []*entity.ProductImage) {
	if len(imgs) == 0 {
		return
	}
	paths := make([]string, 0, len(imgs))
	for _, img := range imgs {
		paths = append(paths, img.StoragePath)
	}
	if err := storage.Delete(ctx, paths...); err != nil {
		log.Warn().Err(err).Strs("paths", paths).Msg("no se pudieron borrar objetos de imagen")
	}
}
