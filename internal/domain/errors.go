package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInactiveAccount    = errors.New("cuenta desactivada")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrWeakPassword       = errors.New("la contraseña es demasiado corta")
	ErrFileTooLarge       = errors.New("archivo demasiado grande")
	ErrUnsupportedMedia   = errors.New("tipo de archivo no soportado")
)
