package entity

import "time"

// Product representa un producto farmacéutico del catálogo.
// El orden manual (SortOrder) es relativo a su categoría.
type Product struct {
	ID          string
	CategoryID  string
	Name        string
	Description string
	Composition string
	Packing     string
	SortOrder   *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage imagen de un producto guardada en el almacenamiento de objetos.
type ProductImage struct {
	ID          string
	ProductID   string
	StoragePath string // clave del objeto en el bucket
	URL         string // URL pública de lectura
	CreatedAt   time.Time
}
