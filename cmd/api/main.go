package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/almacen-pro/prestamos-api/internal/application/auth"
	appprestamo "github.com/almacen-pro/prestamos-api/internal/application/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
	domprestamo "github.com/almacen-pro/prestamos-api/internal/domain/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/infrastructure/postgres"
	"github.com/almacen-pro/prestamos-api/internal/infrastructure/rediscache"
	httpRouter "github.com/almacen-pro/prestamos-api/internal/interfaces/http"
	"github.com/almacen-pro/prestamos-api/pkg/config"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	articuloRepo := postgres.NewArticuloRepository(pool)
	categoriaRepo := postgres.NewCategoriaRepository(pool)
	estadoArticuloRepo := postgres.NewEstadoArticuloRepository(pool)
	estadoPrestamoRepo := postgres.NewEstadoPrestamoRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	prestamoRepo := postgres.NewPrestamoRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché de catálogos: opcional, REDIS_ADDR vacío lo deshabilita.
	var catalogoCache usecase.CatalogoCache
	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, catálogos sin caché")
		} else {
			defer cache.Close()
			catalogoCache = cache
		}
	}

	clock := domprestamo.RelojSistema{}

	authUC := auth.NewAuthUseCase(usuarioRepo, rolRepo, auth.Config{
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
	}, log)
	articuloUC := usecase.NewArticuloUseCase(articuloRepo, categoriaRepo, estadoArticuloRepo)
	categoriaUC := usecase.NewCategoriaUseCase(categoriaRepo, catalogoCache, log)
	estadoUC := usecase.NewEstadoUseCase(estadoArticuloRepo, estadoPrestamoRepo, catalogoCache, log)
	usuarioUC := usecase.NewUsuarioUseCase(usuarioRepo, rolRepo)
	prestamoUC := appprestamo.NewPrestamoUseCase(
		txRunner, prestamoRepo, articuloRepo, usuarioRepo, estadoPrestamoRepo, auditoriaRepo, clock, log,
	)
	auditoriaUC := usecase.NewAuditoriaUseCase(auditoriaRepo)
	reporteUC := usecase.NewReporteUseCase(prestamoRepo, clock)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El JSON lo genera
	// swag init; si no está presente se arranca sin la UI en vez de caer.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Préstamos API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado; se omite la UI de swagger")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ArticuloUC:  articuloUC,
		CategoriaUC: categoriaUC,
		EstadoUC:    estadoUC,
		UsuarioUC:   usuarioUC,
		PrestamoUC:  prestamoUC,
		AuditoriaUC: auditoriaUC,
		ReporteUC:   reporteUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
