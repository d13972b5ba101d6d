package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

const (
	claveCacheEstadosArticulo = "catalogo:estados_articulo"
	claveCacheEstadosPrestamo = "catalogo:estados_prestamo"
)

// EstadoUseCase casos de uso de los catálogos de estados. Los estados de
// préstamo son de solo lectura vía API (el ciclo de vida define los nombres
// canónicos y se siembran por migración); los de artículo admiten alta y edición.
type EstadoUseCase struct {
	articulos repository.EstadoArticuloRepository
	prestamos repository.EstadoPrestamoRepository
	cache     CatalogoCache // puede ser nil
	log       *logger.Logger
}

// NewEstadoUseCase construye el caso de uso. cache puede ser nil.
func NewEstadoUseCase(
	articulos repository.EstadoArticuloRepository,
	prestamos repository.EstadoPrestamoRepository,
	cache CatalogoCache,
	log *logger.Logger,
) *EstadoUseCase {
	return &EstadoUseCase{articulos: articulos, prestamos: prestamos, cache: cache, log: log}
}

// CreateEstadoArticulo alta de un estado de artículo (nombre único).
func (uc *EstadoUseCase) CreateEstadoArticulo(ctx context.Context, in dto.CreateCatalogoRequest) (*dto.CatalogoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.NewValidation("NOMBRE_REQUERIDO", "el nombre es requerido")
	}
	existente, err := uc.articulos.GetByNombre(nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflict("NOMBRE_DUPLICADO", "ya existe un estado con ese nombre").
			WithDetail("nombre", nombre)
	}
	estado := &entity.EstadoArticulo{
		ID:          uuid.New().String(),
		Nombre:      nombre,
		Descripcion: in.Descripcion,
		Activo:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.articulos.Create(estado); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, claveCacheEstadosArticulo)
	return catalogoResponse(estado.ID, estado.Nombre, estado.Descripcion, estado.Activo, estado.CreatedAt), nil
}

// UpdateEstadoArticulo actualización parcial de un estado de artículo.
func (uc *EstadoUseCase) UpdateEstadoArticulo(ctx context.Context, id string, in dto.UpdateCatalogoRequest) (*dto.CatalogoResponse, error) {
	estado, err := uc.articulos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if estado == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, domain.NewValidation("NOMBRE_REQUERIDO", "el nombre es requerido")
		}
		if nombre != estado.Nombre {
			existente, err := uc.articulos.GetByNombre(nombre)
			if err != nil {
				return nil, err
			}
			if existente != nil {
				return nil, domain.NewConflict("NOMBRE_DUPLICADO", "ya existe un estado con ese nombre").
					WithDetail("nombre", nombre)
			}
		}
		estado.Nombre = nombre
	}
	if in.Descripcion != nil {
		estado.Descripcion = *in.Descripcion
	}
	if in.Activo != nil {
		estado.Activo = *in.Activo
	}
	if err := uc.articulos.Update(estado); err != nil {
		return nil, err
	}
	uc.invalidar(ctx, claveCacheEstadosArticulo)
	return catalogoResponse(estado.ID, estado.Nombre, estado.Descripcion, estado.Activo, estado.CreatedAt), nil
}

// ListEstadosArticulo lista estados de artículo, desde caché cuando es posible.
func (uc *EstadoUseCase) ListEstadosArticulo(ctx context.Context, soloActivos bool) ([]dto.CatalogoResponse, error) {
	if soloActivos {
		if cacheadas, ok := uc.leer(ctx, claveCacheEstadosArticulo); ok {
			return cacheadas, nil
		}
	}
	lista, err := uc.articulos.List(soloActivos)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogoResponse, 0, len(lista))
	for _, e := range lista {
		items = append(items, *catalogoResponse(e.ID, e.Nombre, e.Descripcion, e.Activo, e.CreatedAt))
	}
	if soloActivos {
		uc.guardar(ctx, claveCacheEstadosArticulo, items)
	}
	return items, nil
}

// ListEstadosPrestamo lista los estados del ciclo de vida de préstamos.
func (uc *EstadoUseCase) ListEstadosPrestamo(ctx context.Context) ([]dto.CatalogoResponse, error) {
	if cacheadas, ok := uc.leer(ctx, claveCacheEstadosPrestamo); ok {
		return cacheadas, nil
	}
	lista, err := uc.prestamos.List(true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogoResponse, 0, len(lista))
	for _, e := range lista {
		items = append(items, *catalogoResponse(e.ID, e.Nombre, e.Descripcion, e.Activo, e.CreatedAt))
	}
	uc.guardar(ctx, claveCacheEstadosPrestamo, items)
	return items, nil
}

func (uc *EstadoUseCase) leer(ctx context.Context, clave string) ([]dto.CatalogoResponse, bool) {
	if uc.cache == nil {
		return nil, false
	}
	var items []dto.CatalogoResponse
	ok, err := uc.cache.Get(ctx, clave, &items)
	if err != nil {
		uc.log.Warn().Err(err).Str("clave", clave).Msg("fallo leyendo caché de catálogo")
		return nil, false
	}
	return items, ok
}

func (uc *EstadoUseCase) guardar(ctx context.Context, clave string, items []dto.CatalogoResponse) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, clave, items); err != nil {
		uc.log.Warn().Err(err).Str("clave", clave).Msg("fallo escribiendo caché de catálogo")
	}
}

func (uc *EstadoUseCase) invalidar(ctx context.Context, clave string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, clave); err != nil {
		uc.log.Warn().Err(err).Str("clave", clave).Msg("fallo invalidando caché de catálogo")
	}
}
