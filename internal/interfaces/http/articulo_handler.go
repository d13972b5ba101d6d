package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// ArticuloHandler maneja las peticiones HTTP para artículos (protegido).
type ArticuloHandler struct {
	uc *usecase.ArticuloUseCase
}

// NewArticuloHandler construye el handler.
func NewArticuloHandler(uc *usecase.ArticuloUseCase) *ArticuloHandler {
	return &ArticuloHandler{uc: uc}
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateArticuloRequest  true  "Datos del artículo"
// @Success      201   {object}  dto.ArticuloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articulos [post]
func (h *ArticuloHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener artículo por ID
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [get]
func (h *ArticuloHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "ARTICULO_NO_ENCONTRADO", "artículo no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar artículo
// @Tags         articulos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del artículo"
// @Param        body  body  dto.UpdateArticuloRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ArticuloResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [put]
func (h *ArticuloHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateArticuloRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "ARTICULO_NO_ENCONTRADO", "artículo no encontrado")
	}
	return c.JSON(out)
}

// Desactivar godoc
// @Summary      Desactivar artículo (baja lógica)
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticuloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articulos/{id} [delete]
func (h *ArticuloHandler) Desactivar(c *fiber.Ctx) error {
	out, err := h.uc.Desactivar(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "ARTICULO_NO_ENCONTRADO", "artículo no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar artículos
// @Tags         articulos
// @Security     Bearer
// @Produce      json
// @Param        q             query  string  false  "Búsqueda por nombre, equipo o código"
// @Param        categoria_id  query  string  false  "Filtrar por categoría"
// @Param        estado_id     query  string  false  "Filtrar por estado"
// @Param        activos       query  bool    false  "Solo activos"
// @Param        limit         query  int     false  "Límite"   default(20)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ArticuloListResponse
// @Router       /api/articulos [get]
func (h *ArticuloHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(
		c.Query("q"),
		c.Query("categoria_id"),
		c.Query("estado_id"),
		c.QueryBool("activos", false),
		page,
	)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
