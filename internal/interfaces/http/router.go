package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-pro/prestamos-api/internal/application/auth"
	appprestamo "github.com/almacen-pro/prestamos-api/internal/application/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ArticuloUC  *usecase.ArticuloUseCase
	CategoriaUC *usecase.CategoriaUseCase
	EstadoUC    *usecase.EstadoUseCase
	UsuarioUC   *usecase.UsuarioUseCase
	PrestamoUC  *appprestamo.PrestamoUseCase
	AuditoriaUC *usecase.AuditoriaUseCase
	ReporteUC   *usecase.ReporteUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Lectura para cualquier usuario
// autenticado (incluye Consulta); escritura solo Administrador y Operador;
// registro de usuarios y auditoría solo Administrador.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	escritura := RequireRole(entity.RolAdministrador, entity.RolOperador)
	soloAdmin := RequireRole(entity.RolAdministrador)

	// Auth: login público, registro solo Administrador
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), soloAdmin, authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Artículos
	articulos := protected.Group("/articulos")
	articuloHandler := NewArticuloHandler(deps.ArticuloUC)
	articulos.Get("/", articuloHandler.List)
	articulos.Get("/:id", articuloHandler.GetByID)
	articulos.Post("/", escritura, articuloHandler.Create)
	articulos.Put("/:id", escritura, articuloHandler.Update)
	articulos.Delete("/:id", escritura, articuloHandler.Desactivar)

	// Categorías
	categorias := protected.Group("/categorias")
	categoriaHandler := NewCategoriaHandler(deps.CategoriaUC)
	categorias.Get("/", categoriaHandler.List)
	categorias.Get("/:id", categoriaHandler.GetByID)
	categorias.Post("/", escritura, categoriaHandler.Create)
	categorias.Put("/:id", escritura, categoriaHandler.Update)

	// Estados (de artículo y de préstamo)
	estadoHandler := NewEstadoHandler(deps.EstadoUC)
	estadosArticulo := protected.Group("/estados-articulo")
	estadosArticulo.Get("/", estadoHandler.ListEstadosArticulo)
	estadosArticulo.Post("/", escritura, estadoHandler.CreateEstadoArticulo)
	estadosArticulo.Put("/:id", escritura, estadoHandler.UpdateEstadoArticulo)
	protected.Get("/estados-prestamo", estadoHandler.ListEstadosPrestamo)

	// Usuarios y roles
	usuarios := protected.Group("/usuarios")
	usuarioHandler := NewUsuarioHandler(deps.UsuarioUC)
	usuarios.Get("/", usuarioHandler.List)
	usuarios.Get("/:id", usuarioHandler.GetByID)
	usuarios.Put("/:id", soloAdmin, usuarioHandler.Update)
	usuarios.Delete("/:id", soloAdmin, usuarioHandler.Desactivar)
	protected.Get("/roles", usuarioHandler.ListRoles)

	// Préstamos
	prestamos := protected.Group("/prestamos")
	prestamoHandler := NewPrestamoHandler(deps.PrestamoUC)
	prestamos.Get("/", prestamoHandler.List)
	prestamos.Get("/:id", prestamoHandler.GetByID)
	prestamos.Post("/", escritura, prestamoHandler.Solicitar)
	prestamos.Put("/:id/aprobacion", escritura, prestamoHandler.Aprobar)
	prestamos.Put("/:id/entrega", escritura, prestamoHandler.Entregar)
	prestamos.Put("/:id/devolucion", escritura, prestamoHandler.Devolver)

	// Reportes
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	protected.Get("/reportes/prestamos", reporteHandler.Prestamos)

	// Auditoría (solo Administrador)
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	protected.Get("/auditoria", soloAdmin, auditoriaHandler.List)
}
