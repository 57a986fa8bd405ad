package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	"github.com/dailishaw/dailishaw-api/internal/domain"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
)

// logService contrato común de gastos, entregas e inversiones.
type logService[Req, Resp any] interface {
	Create(ctx context.Context, actor entity.Actor, in Req) (*Resp, error)
	List(ctx context.Context, f repository.LogFilter) ([]Resp, error)
	Update(ctx context.Context, actor entity.Actor, id string, in Req) (*Resp, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
}

// LogHandler CRUD de un registro de campo. En la consola de usuario (OwnScope)
// los listados se limitan al llamador; en la de admin se filtran por ?user_id=.
type LogHandler[Req, Resp any] struct {
	svc logService[Req, Resp]
}

// NewLogHandler construye el handler.
func NewLogHandler[Req, Resp any](svc logService[Req, Resp]) *LogHandler[Req, Resp] {
	return &LogHandler[Req, Resp]{svc: svc}
}

// Create POST /{logs}
func (h *LogHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkRefs(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List GET /{logs}?user_id=&from=&to=
func (h *LogHandler[Req, Resp]) List(c *fiber.Ctx) error {
	f, err := logFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.List(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Update PUT /{logs}/:id
func (h *LogHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := checkRefs(in); err != nil {
		return writeError(c, err)
	}
	out, err := h.svc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /{logs}/:id
func (h *LogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.svc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// logQuery lee los filtros de query; en OwnScope el usuario es siempre el llamador.
func logQuery(c *fiber.Ctx) (dto.LogQuery, error) {
	var q dto.LogQuery
	if err := c.QueryParser(&q); err != nil {
		return q, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if isOwnScope(c) {
		q.UserID = GetUserID(c)
	}
	if err := checkIDs(q.UserID); err != nil {
		return q, err
	}
	return q, nil
}

// checkRefs valida los ids referenciados por el cuerpo, si el tipo los expone.
func checkRefs(in any) error {
	if r, ok := in.(interface{ Refs() []string }); ok {
		return checkIDs(r.Refs()...)
	}
	return nil
}

func logFilter(c *fiber.Ctx) (repository.LogFilter, error) {
	q, err := logQuery(c)
	if err != nil {
		return repository.LogFilter{}, err
	}
	return usecase.ParseLogFilter(q)
}

// DoctorHandler médicos de los usuarios de campo.
type DoctorHandler struct {
	uc *usecase.DoctorUseCase
}

// NewDoctorHandler construye el handler.
func NewDoctorHandler(uc *usecase.DoctorUseCase) *DoctorHandler {
	return &DoctorHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar médico
// @Tags         doctors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DoctorRequest  true  "Datos del médico"
// @Success      201   {object}  dto.DoctorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/doctors [post]
func (h *DoctorHandler) Create(c *fiber.Ctx) error {
	var in dto.DoctorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar médicos
// @Description  Consola de usuario: los propios. Admin: todos o ?user_id=.
// @Tags         doctors
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  string  false  "Usuario (solo admin)"
// @Success      200  {object}  dto.ListResponse[dto.DoctorResponse]
// @Router       /api/admin/doctors [get]
// @Router       /api/user/doctors [get]
func (h *DoctorHandler) List(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if isOwnScope(c) {
		userID = GetUserID(c)
	}
	if err := checkIDs(userID); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Update godoc
// @Summary      Actualizar médico propio
// @Tags         doctors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del médico"
// @Param        body  body  dto.DoctorRequest  true  "Datos"
// @Success      200   {object}  dto.DoctorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/user/doctors/{id} [put]
func (h *DoctorHandler) Update(c *fiber.Ctx) error {
	var in dto.DoctorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetActor(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar médico
// @Tags         doctors
// @Security     Bearer
// @Param        id   path  string  true  "ID del médico"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/user/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
