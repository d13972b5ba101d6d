package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// ReporteHandler reportes de préstamos (protegido).
type ReporteHandler struct {
	uc *usecase.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *usecase.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Prestamos godoc
// @Summary      Reporte de préstamos con resumen
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        usuario_id   query  string  false  "Filtrar por solicitante"
// @Param        articulo_id  query  string  false  "Filtrar por artículo"
// @Param        estado_id    query  string  false  "Filtrar por estado"
// @Param        vencidos     query  bool    false  "Solo vencidos"
// @Param        desde        query  string  false  "Desde (RFC 3339, sobre fecha de solicitud)"
// @Param        hasta        query  string  false  "Hasta (RFC 3339)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ReportePrestamosResponse
// @Router       /api/reportes/prestamos [get]
func (h *ReporteHandler) Prestamos(c *fiber.Ctx) error {
	var in dto.ReportePrestamosRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Prestamos(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
