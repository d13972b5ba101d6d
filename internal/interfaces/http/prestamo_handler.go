package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	appprestamo "github.com/almacen-pro/prestamos-api/internal/application/prestamo"
)

// PrestamoHandler maneja el ciclo de vida de los préstamos (protegido).
type PrestamoHandler struct {
	uc *appprestamo.PrestamoUseCase
}

// NewPrestamoHandler construye el handler.
func NewPrestamoHandler(uc *appprestamo.PrestamoUseCase) *PrestamoHandler {
	return &PrestamoHandler{uc: uc}
}

// Solicitar godoc
// @Summary      Solicitar préstamo de un artículo
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SolicitarPrestamoRequest  true  "Datos de la solicitud"
// @Success      201   {object}  dto.PrestamoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prestamos [post]
func (h *PrestamoHandler) Solicitar(c *fiber.Ctx) error {
	var in dto.SolicitarPrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Solicitar(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Aprobar godoc
// @Summary      Aprobar o rechazar un préstamo pendiente
// @Description  Con aprobado=false el préstamo pasa a Rechazado. Con fecha_entrega_real se registra entrega inmediata.
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del préstamo"
// @Param        body  body  dto.AprobarPrestamoRequest  true  "Decisión del aprobador"
// @Success      200   {object}  dto.PrestamoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id}/aprobacion [put]
func (h *PrestamoHandler) Aprobar(c *fiber.Ctx) error {
	var in dto.AprobarPrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.AprobarORechazar(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Entregar godoc
// @Summary      Registrar la entrega de un préstamo aprobado
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del préstamo"
// @Param        body  body  dto.EntregarPrestamoRequest  true  "Datos de la entrega"
// @Success      200   {object}  dto.PrestamoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id}/entrega [put]
func (h *PrestamoHandler) Entregar(c *fiber.Ctx) error {
	var in dto.EntregarPrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Entregar(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Devolver godoc
// @Summary      Registrar la devolución de un préstamo entregado
// @Tags         prestamos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del préstamo"
// @Param        body  body  dto.DevolverPrestamoRequest  true  "Datos de la devolución"
// @Success      200   {object}  dto.PrestamoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id}/devolucion [put]
func (h *PrestamoHandler) Devolver(c *fiber.Ctx) error {
	var in dto.DevolverPrestamoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Devolver(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener préstamo por ID (con mora calculada)
// @Tags         prestamos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del préstamo"
// @Success      200  {object}  dto.PrestamoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prestamos/{id} [get]
func (h *PrestamoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "PRESTAMO_NO_ENCONTRADO", "préstamo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar préstamos
// @Tags         prestamos
// @Security     Bearer
// @Produce      json
// @Param        usuario_id   query  string  false  "Filtrar por solicitante"
// @Param        articulo_id  query  string  false  "Filtrar por artículo"
// @Param        estado_id    query  string  false  "Filtrar por estado"
// @Param        vencidos     query  bool    false  "Solo vencidos"
// @Param        limit        query  int     false  "Límite"   default(20)
// @Param        offset       query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.PrestamoListResponse
// @Router       /api/prestamos [get]
func (h *PrestamoHandler) List(c *fiber.Ctx) error {
	var in dto.ListPrestamosRequest
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
