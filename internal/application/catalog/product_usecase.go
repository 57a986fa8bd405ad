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

// ProductUseCase CRUD de productos + orden manual dentro de la categoría.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     repository.ProductImageRepository
	storage    ObjectStorage
	reorderer  *Reorderer
	log        zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	images repository.ProductImageRepository,
	storage ObjectStorage,
	reorderer *Reorderer,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:       repo,
		categories: categories,
		images:     images,
		storage:    storage,
		reorderer:  reorderer,
		log:        log,
	}
}

// Create crea un producto en una categoría existente, sin orden.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := naming.Clean(in.Name)
	if name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if err := uc.ensureUniqueName(ctx, in.CategoryID, name, ""); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: in.Description,
		Composition: in.Composition,
		Packing:     in.Packing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// GetByID devuelve el producto con sus imágenes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	imgs, err := uc.images.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(p, imgs), nil
}

// List lista los productos de una categoría en su orden manual; categoryID vacío = todos.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string) ([]dto.ProductResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if categoryID == "" {
		list, err = uc.repo.ListAll(ctx)
	} else {
		if err := uc.ensureCategory(ctx, categoryID); err != nil {
			return nil, err
		}
		list, err = uc.repo.ListByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p, nil))
	}
	return out, nil
}

// Update edición parcial. Cambiar de categoría deja el producto sin orden en la nueva.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	targetCategory := p.CategoryID
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		targetCategory = *in.CategoryID
	}
	name := p.Name
	if in.Name != nil {
		name = naming.Clean(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	if targetCategory != p.CategoryID || name != p.Name {
		if err := uc.ensureUniqueName(ctx, targetCategory, name, p.ID); err != nil {
			return nil, err
		}
	}

	p.CategoryID = targetCategory
	p.Name = name
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Composition != nil {
		p.Composition = *in.Composition
	}
	if in.Packing != nil {
		p.Packing = *in.Packing
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toProductResponse(p, nil), nil
}

// Delete elimina el producto (imágenes en cascada por FK) y sus objetos de almacenamiento.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	imgs, err := uc.images.ListByProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	removeObjects(ctx, uc.storage, uc.log, imgs)
	return nil
}

// Move sube/baja el producto una posición dentro de su categoría.
func (uc *ProductUseCase) Move(ctx context.Context, id string, dir ordering.Direction) (bool, error) {
	return uc.reorderer.Move(ctx, ordering.Products, id, dir)
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *ProductUseCase) ensureUniqueName(ctx context.Context, categoryID, name, selfID string) error {
	other, err := uc.repo.GetByCategoryAndNameKey(ctx, categoryID, naming.Key(name))
	if err != nil {
		return err
	}
	if other != nil && other.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func toProductResponse(p *entity.Product, imgs []*entity.ProductImage) *dto.ProductResponse {
	out := &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Composition: p.Composition,
		Packing:     p.Packing,
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, img := range imgs {
		out.Images = append(out.Images, toImageResponse(img))
	}
	return out
}
