package dto

import "time"

// CreateProfileRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateProfileRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UpdateProfileRequest actualización parcial de un perfil.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin user"`
}

// ResetPasswordRequest restablecimiento de contraseña (operación privilegiada).
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// SetActiveRequest activar / desactivar una cuenta.
type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// DeleteUserRequest cuerpo de POST /api/delete-user.
type DeleteUserRequest struct {
	UserID string `json:"userId"`
}

// ProfileResponse salida de un perfil (sin password).
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
