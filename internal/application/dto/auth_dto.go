package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el perfil.
type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

// SessionResponse usuario actual (id, rol, activo).
type SessionResponse struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}
