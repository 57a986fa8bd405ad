package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/ordering"
)

var (
	errMissingUser = errors.New("user_id no encontrado en el token")
	errMissingID   = errors.New("id es requerido")
)

// errorLog logger de errores internos; lo fija Router.
var errorLog = zerolog.Nop()

// httpError traducción de un error de dominio a respuesta HTTP.
type httpError struct {
	status int
	code   string
}

var domainErrors = []struct {
	err error
	out httpError
}{
	{domain.ErrUserNotFound, httpError{fiber.StatusNotFound, "USER_NOT_FOUND"}},
	{domain.ErrNotFound, httpError{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrEmailAlreadyExists, httpError{fiber.StatusConflict, "EMAIL_EXISTS"}},
	{domain.ErrDuplicate, httpError{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrConflict, httpError{fiber.StatusConflict, "REORDER_CONFLICT"}},
	{domain.ErrWeakPassword, httpError{fiber.StatusBadRequest, "WEAK_PASSWORD"}},
	{domain.ErrFileTooLarge, httpError{fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"}},
	{domain.ErrUnsupportedMedia, httpError{fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA"}},
	{ordering.ErrInvalidDirection, httpError{fiber.StatusBadRequest, "INVALID_DIRECTION"}},
	{domain.ErrInvalidInput, httpError{fiber.StatusBadRequest, "VALIDATION"}},
	{domain.ErrInactiveAccount, httpError{fiber.StatusForbidden, "ACCOUNT_INACTIVE"}},
	{domain.ErrForbidden, httpError{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrUnauthorized, httpError{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{errMissingUser, httpError{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{errMissingID, httpError{fiber.StatusBadRequest, "MISSING_ID"}},
}

// writeError responde con el código del error de dominio; cualquier otro es 500 INTERNAL.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return c.Status(m.out.status).JSON(dto.ErrorResponse{Code: m.out.code, Message: err.Error()})
		}
	}
	errorLog.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("user_id", GetUserID(c)).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// pathID lee el parámetro :id. Un id que no es UUID no existe en la base: ErrNotFound.
func pathID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if id == "" {
		return "", errMissingID
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}

// checkIDs valida ids opcionales de query o cuerpo; los vacíos se aceptan.
func checkIDs(ids ...string) error {
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("%w: id mal formado %q", domain.ErrInvalidInput, id)
		}
	}
	return nil
}

func validation(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
