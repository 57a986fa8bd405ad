package entity

import "time"

// Category agrupa productos del catálogo. SortOrder es nil hasta el primer reordenamiento.
type Category struct {
	ID          string
	Name        string
	Description string
	SortOrder   *int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
