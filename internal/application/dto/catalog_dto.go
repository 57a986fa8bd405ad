package dto

import "time"

// CategoryRequest alta/edición de categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   *int      `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	Composition string `json:"composition"`
	Packing     string `json:"packing"`
}

// UpdateProductRequest edición parcial de producto.
type UpdateProductRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Composition *string `json:"composition"`
	Packing     *string `json:"packing"`
}

// ProductResponse salida de un producto (con imágenes si se pidieron).
type ProductResponse struct {
	ID          string                 `json:"id"`
	CategoryID  string                 `json:"category_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Composition string                 `json:"composition"`
	Packing     string                 `json:"packing"`
	SortOrder   *int                   `json:"sort_order"`
	Images      []ProductImageResponse `json:"images,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ProductImageResponse salida de una imagen de producto.
type ProductImageResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// MoveRequest petición de reordenamiento.
type MoveRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}
