// seed puebla los catálogos base (roles, estados de artículo y de préstamo)
// y crea el usuario administrador inicial si no existe.
//
// Uso: go run ./cmd/seed
// El administrador se controla con SEED_ADMIN_EMAIL, SEED_ADMIN_PASSWORD y
// SEED_ADMIN_CEDULA; la contraseña por defecto es solo para entornos locales.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	domprestamo "github.com/almacen-pro/prestamos-api/internal/domain/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/infrastructure/postgres"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	roles := postgres.NewRolRepository(pool)
	estadosArticulo := postgres.NewEstadoArticuloRepository(pool)
	estadosPrestamo := postgres.NewEstadoPrestamoRepository(pool)
	usuarios := postgres.NewUsuarioRepository(pool)

	ahora := time.Now()

	for nombre, descripcion := range map[string]string{
		entity.RolAdministrador: "Acceso total, incluida gestión de usuarios y auditoría",
		entity.RolOperador:      "Gestiona artículos, catálogos y préstamos",
		entity.RolConsulta:      "Solo lectura",
	} {
		existente, err := roles.GetByNombre(nombre)
		if err != nil {
			log.Fatal().Err(err).Str("rol", nombre).Msg("consultar rol")
		}
		if existente != nil {
			continue
		}
		rol := &entity.Rol{ID: uuid.NewString(), Nombre: nombre, Descripcion: descripcion, Activo: true, CreatedAt: ahora}
		if err := roles.Create(rol); err != nil {
			log.Fatal().Err(err).Str("rol", nombre).Msg("crear rol")
		}
		log.Info().Str("rol", nombre).Msg("rol creado")
	}

	for nombre, descripcion := range map[string]string{
		entity.EstadoArticuloDisponible: "Listo para prestarse",
		"En Mantenimiento":              "Fuera de circulación temporalmente",
		"Dado de Baja":                  "Retirado del inventario",
	} {
		existente, err := estadosArticulo.GetByNombre(nombre)
		if err != nil {
			log.Fatal().Err(err).Str("estado", nombre).Msg("consultar estado de artículo")
		}
		if existente != nil {
			continue
		}
		estado := &entity.EstadoArticulo{ID: uuid.NewString(), Nombre: nombre, Descripcion: descripcion, Activo: true, CreatedAt: ahora}
		if err := estadosArticulo.Create(estado); err != nil {
			log.Fatal().Err(err).Str("estado", nombre).Msg("crear estado de artículo")
		}
		log.Info().Str("estado", nombre).Msg("estado de artículo creado")
	}

	for nombre, descripcion := range map[string]string{
		domprestamo.EstadoPendiente: "Solicitud registrada, a la espera de decisión",
		domprestamo.EstadoAprobado:  "Aprobado, pendiente de entrega",
		domprestamo.EstadoEntregado: "Artículo en manos del solicitante",
		domprestamo.EstadoDevuelto:  "Artículo devuelto al depósito",
		domprestamo.EstadoRechazado: "Solicitud rechazada",
	} {
		existente, err := estadosPrestamo.GetByNombre(nombre)
		if err != nil {
			log.Fatal().Err(err).Str("estado", nombre).Msg("consultar estado de préstamo")
		}
		if existente != nil {
			continue
		}
		estado := &entity.EstadoPrestamo{ID: uuid.NewString(), Nombre: nombre, Descripcion: descripcion, Activo: true, CreatedAt: ahora}
		if err := estadosPrestamo.Create(estado); err != nil {
			log.Fatal().Err(err).Str("estado", nombre).Msg("crear estado de préstamo")
		}
		log.Info().Str("estado", nombre).Msg("estado de préstamo creado")
	}

	email := envODefecto("SEED_ADMIN_EMAIL", "admin@almacen.local")
	existente, err := usuarios.GetByEmail(email)
	if err != nil {
		log.Fatal().Err(err).Msg("consultar administrador")
	}
	if existente != nil {
		log.Info().Str("email", email).Msg("administrador ya existe, nada que sembrar")
		return
	}

	rolAdmin, err := roles.GetByNombre(entity.RolAdministrador)
	if err != nil || rolAdmin == nil {
		log.Fatal().Err(err).Msg("rol Administrador no disponible")
	}

	password := envODefecto("SEED_ADMIN_PASSWORD", "cambiar-ya")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hashear contraseña")
	}

	admin := &entity.Usuario{
		ID:           uuid.NewString(),
		Cedula:       envODefecto("SEED_ADMIN_CEDULA", "1710034065"),
		Nombres:      "Administrador",
		Apellidos:    "Sistema",
		Email:        email,
		PasswordHash: string(hash),
		RolID:        rolAdmin.ID,
		Activo:       true,
		CreatedAt:    ahora,
		UpdatedAt:    ahora,
	}
	if err := usuarios.Create(admin); err != nil {
		log.Fatal().Err(err).Msg("crear administrador")
	}
	log.Info().Str("email", email).Msg("administrador creado; cambie la contraseña inicial")
}

func envODefecto(clave, defecto string) string {
	if v := os.Getenv(clave); v != "" {
		return v
	}
	return defecto
}
