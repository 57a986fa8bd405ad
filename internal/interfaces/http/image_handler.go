package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/dailishaw/dailishaw-api/internal/application/catalog"
	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/domain"
)

// ImageHandler imágenes de producto: subida/borrado (admin) y visor (cualquier rol).
type ImageHandler struct {
	uc *catalog.ImageUseCase
}

// NewImageHandler construye el handler.
func NewImageHandler(uc *catalog.ImageUseCase) *ImageHandler {
	return &ImageHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir imagen de producto
// @Tags         media
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID del producto"
// @Param        file  formData  file    true  "Imagen (image/*)"
// @Success      201   {object}  dto.ProductImageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Failure      415   {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/images [post]
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	productID, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return validation(c, "archivo 'file' requerido")
	}
	if fh.Size > int64(h.uc.MaxBytes()) {
		return writeError(c, domain.ErrFileTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, int64(h.uc.MaxBytes())+1))
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Upload(c.UserContext(), productID, fh.Filename, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Imágenes de un producto (visor)
// @Tags         media
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ListResponse[dto.ProductImageResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/media/products/{id}/images [get]
func (h *ImageHandler) List(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewList(out))
}

// Delete godoc
// @Summary      Eliminar imagen
// @Tags         media
// @Security     Bearer
// @Param        id   path  string  true  "ID de la imagen"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/images/{id} [delete]
func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
