package catalog

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// DefaultMaxImageBytes límite de tamaño de imagen (5 MB).
const DefaultMaxImageBytes = 5 * 1024 * 1024

// ImageUseCase imágenes de producto: subida al almacenamiento + fila en product_images.
type ImageUseCase struct {
	images   repository.ProductImageRepository
	products repository.ProductRepository
	storage  ObjectStorage
	maxBytes int
	log      zerolog.Logger
}

// NewImageUseCase construye el caso de uso. maxBytes <= 0 usa DefaultMaxImageBytes.
func NewImageUseCase(
	images repository.ProductImageRepository,
	products repository.ProductRepository,
	storage ObjectStorage,
	maxBytes int,
	log zerolog.Logger,
) *ImageUseCase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageUseCase{images: images, products: products, storage: storage, maxBytes: maxBytes, log: log}
}

// MaxBytes límite configurado.
func (uc *ImageUseCase) MaxBytes() int { return uc.maxBytes }

// Upload valida (solo imágenes, <= maxBytes), sube a products/<productID>/<uuid><ext>
// y registra la fila. Si la fila no se puede insertar, el objeto se borra.
func (uc *ImageUseCase) Upload(ctx context.Context, productID, filename string, data []byte) (*dto.ProductImageResponse, error) {
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if len(data) > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrUnsupportedMedia
	}

	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	objectPath := path.Join("products", productID, uuid.New().String()+imageExt(filename, contentType))
	url, err := uc.storage.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}

	img := &entity.ProductImage{
		ID:          uuid.New().String(),
		ProductID:   productID,
		StoragePath: objectPath,
		URL:         url,
		CreatedAt:   time.Now(),
	}
	if err := uc.images.Create(ctx, img); err != nil {
		if delErr := uc.storage.Delete(ctx, objectPath); delErr != nil {
			uc.log.Error().Err(delErr).Str("path", objectPath).Msg("objeto huérfano tras fallo al registrar imagen")
		}
		return nil, err
	}
	out := toImageResponse(img)
	return &out, nil
}

// List imágenes de un producto (visor de medios).
func (uc *ImageUseCase) List(ctx context.Context, productID string) ([]dto.ProductImageResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	imgs, err := uc.images.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductImageResponse, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, toImageResponse(img))
	}
	return out, nil
}

// Delete elimina la fila y luego el objeto (best-effort).
func (uc *ImageUseCase) Delete(ctx context.Context, imageID string) error {
	img, err := uc.images.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return domain.ErrNotFound
	}
	if err := uc.images.Delete(ctx, imageID); err != nil {
		return err
	}
	removeObjects(ctx, uc.storage, uc.log, []*entity.ProductImage{img})
	return nil
}

// imageExt extensión del nombre original si existe; si no, la del tipo detectado.
func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 5 {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func toImageResponse(img *entity.ProductImage) dto.ProductImageResponse {
	return dto.ProductImageResponse{
		ID:        img.ID,
		ProductID: img.ProductID,
		URL:       img.URL,
		CreatedAt: img.CreatedAt,
	}
}
