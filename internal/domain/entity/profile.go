package entity

import (
	"fmt"
	"time"
)

// Role rol de un perfil. Conjunto cerrado: admin | user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole convierte un string en Role; cualquier otro valor es error.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// Profile representa un usuario del sistema (administrador o usuario de campo).
type Profile struct {
	ID           string
	Email        string
	FullName     string
	Phone        string
	Role         Role
	IsActive     bool
	PasswordHash string // bcrypt hash, nunca plano
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin informa si el perfil tiene rol administrador.
func (p *Profile) IsAdmin() bool { return p.Role == RoleAdmin }

// CanSignIn aplica la regla de acceso: las cuentas no-admin desactivadas no entran.
func (p *Profile) CanSignIn() bool { return p.IsActive || p.IsAdmin() }

// Actor identidad de quien ejecuta una operación (extraída del token).
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin informa si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Owns true si el actor puede modificar un registro del usuario ownerID.
func (a Actor) Owns(ownerID string) bool { return a.IsAdmin() || a.ID == ownerID }
