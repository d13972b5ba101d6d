package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// CategoriaHandler maneja las peticiones HTTP para categorías (protegido).
type CategoriaHandler struct {
	uc *usecase.CategoriaUseCase
}

// NewCategoriaHandler construye el handler.
func NewCategoriaHandler(uc *usecase.CategoriaUseCase) *CategoriaHandler {
	return &CategoriaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogoRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CatalogoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoriaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CatalogoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoriaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "CATEGORIA_NO_ENCONTRADA", "categoría no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCatalogoRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CatalogoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [put]
func (h *CategoriaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCatalogoRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "CATEGORIA_NO_ENCONTRADA", "categoría no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar categorías
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        activas  query  bool  false  "Solo activas"
// @Success      200  {array}  dto.CatalogoResponse
// @Router       /api/categorias [get]
func (h *CategoriaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("activas", false))
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
