package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// EstadoHandler maneja los catálogos de estados (protegido).
type EstadoHandler struct {
	uc *usecase.EstadoUseCase
}

// NewEstadoHandler construye el handler.
func NewEstadoHandler(uc *usecase.EstadoUseCase) *EstadoHandler {
	return &EstadoHandler{uc: uc}
}

// CreateEstadoArticulo godoc
// @Summary      Crear estado de artículo
// @Tags         estados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogoRequest  true  "Datos del estado"
// @Success      201   {object}  dto.CatalogoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/estados-articulo [post]
func (h *EstadoHandler) CreateEstadoArticulo(c *fiber.Ctx) error {
	var in dto.CreateCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.CreateEstadoArticulo(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEstadoArticulo godoc
// @Summary      Actualizar estado de artículo
// @Tags         estados
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del estado"
// @Param        body  body  dto.UpdateCatalogoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CatalogoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estados-articulo/{id} [put]
func (h *EstadoHandler) UpdateEstadoArticulo(c *fiber.Ctx) error {
	var in dto.UpdateCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.UpdateEstadoArticulo(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "ESTADO_NO_ENCONTRADO", "estado de artículo no encontrado")
	}
	return c.JSON(out)
}

// ListEstadosArticulo godoc
// @Summary      Listar estados de artículo
// @Tags         estados
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Solo activos"
// @Success      200  {array}  dto.CatalogoResponse
// @Router       /api/estados-articulo [get]
func (h *EstadoHandler) ListEstadosArticulo(c *fiber.Ctx) error {
	out, err := h.uc.ListEstadosArticulo(c.UserContext(), c.QueryBool("activos", false))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListEstadosPrestamo godoc
// @Summary      Listar estados de préstamo
// @Tags         estados
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogoResponse
// @Router       /api/estados-prestamo [get]
func (h *EstadoHandler) ListEstadosPrestamo(c *fiber.Ctx) error {
	out, err := h.uc.ListEstadosPrestamo(c.UserContext())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
