package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// AuditoriaHandler consulta del log de auditoría (solo Administrador).
type AuditoriaHandler struct {
	uc *usecase.AuditoriaUseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *usecase.AuditoriaUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// List godoc
// @Summary      Consultar el log de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        tabla        query  string  false  "Filtrar por tabla"
// @Param        registro_id  query  string  false  "Filtrar por registro"
// @Param        usuario_id   query  string  false  "Filtrar por usuario"
// @Param        desde        query  string  false  "Desde (RFC 3339)"
// @Param        hasta        query  string  false  "Hasta (RFC 3339)"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.AuditoriaListResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	var in dto.ListAuditoriaRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
