package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/dailishaw/dailishaw-api/internal/application/export"
)

// ExportHandler descarga de registros en CSV / XLSX / PDF.
type ExportHandler struct {
	svc *export.Service
}

// NewExportHandler construye el handler.
func NewExportHandler(svc *export.Service) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Export godoc
// @Summary      Exportar registros
// @Description  kind = expenses | inputs | investments. Nombre: <Kind>_<Usuario|All_Users>_<YYYY-MM-DD>.<ext>
// @Tags         export
// @Security     Bearer
// @Produce      text/csv
// @Param        user_id  query  string  false  "Usuario (solo admin)"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Param        format   query  string  false  "csv | xlsx | pdf"  default(csv)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/{kind}/export [get]
// @Router       /api/user/{kind}/export [get]
func (h *ExportHandler) Export(kind export.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := logFilter(c)
		if err != nil {
			return writeError(c, err)
		}
		format, err := export.ParseFormat(c.Query("format"))
		if err != nil {
			return writeError(c, err)
		}
		doc, err := h.svc.Export(c.UserContext(), kind, f, format)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		return c.Send(doc.Body)
	}
}
