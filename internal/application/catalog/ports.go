package catalog

import (
	"context"

	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// OrderingTxRunner ejecuta fn dentro de una transacción de BD con el repositorio de
// orden de la colección kind atado a esa tx. Si fn devuelve error se hace rollback.
type OrderingTxRunner interface {
	RunOrdering(ctx context.Context, kind ordering.Kind, fn func(repo repository.OrderingRepository) error) error
}

// ObjectStorage almacenamiento de objetos binarios por ruta.
type ObjectStorage interface {
	// Upload guarda body en path y devuelve la URL pública de lectura.
	Upload(ctx context.Context, path, contentType string, body []byte) (publicURL string, err error)
	// Delete elimina los objetos indicados; rutas inexistentes no son error.
	Delete(ctx context.Context, paths ...string) error
}
