package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
)

// UsuarioHandler maneja las peticiones HTTP para usuarios (protegido).
type UsuarioHandler struct {
	uc *usecase.UsuarioUseCase
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase) *UsuarioHandler {
	return &UsuarioHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UsuarioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUsuarioRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.UsuarioResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUsuarioRequest
	if err := c.BodyParser(&in); err != nil {
		return responderCuerpoInvalido(c)
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	return c.JSON(out)
}

// Desactivar godoc
// @Summary      Desactivar usuario (baja lógica)
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {object}  dto.UsuarioResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UsuarioHandler) Desactivar(c *fiber.Ctx) error {
	out, err := h.uc.Desactivar(c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return responderNoEncontrado(c, "USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Solo activos"
// @Param        limit    query  int   false  "Límite"   default(20)
// @Param        offset   query  int   false  "Offset"   default(0)
// @Success      200  {object}  dto.UsuarioListResponse
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.QueryBool("activos", false), page)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// ListRoles godoc
// @Summary      Listar roles
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CatalogoResponse
// @Router       /api/roles [get]
func (h *UsuarioHandler) ListRoles(c *fiber.Ctx) error {
	out, err := h.uc.ListRoles()
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
