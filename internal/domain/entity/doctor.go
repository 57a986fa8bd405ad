package entity

import "time"

// Doctor médico visitado por un usuario de campo.
type Doctor struct {
	ID             string
	UserID         string
	Name           string
	Specialization string
	Clinic         string
	Phone          string
	City           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
