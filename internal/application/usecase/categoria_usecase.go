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

const claveCacheCategorias = "catalogo:categorias"

// CategoriaUseCase casos de uso del catálogo de categorías. El listado de
// activas pasa por caché si hay una configurada; las escrituras la invalidan.
type CategoriaUseCase struct {
	repo  repository.CategoriaRepository
	cache CatalogoCache // puede ser nil
	log   *logger.Logger
}

// NewCategoriaUseCase construye el caso de uso. cache puede ser nil.
func NewCategoriaUseCase(repo repository.CategoriaRepository, cache CatalogoCache, log *logger.Logger) *CategoriaUseCase {
	return &CategoriaUseCase{repo: repo, cache: cache, log: log}
}

// Create da de alta una categoría (nombre único).
func (uc *CategoriaUseCase) Create(ctx context.Context, in dto.CreateCatalogoRequest) (*dto.CatalogoResponse, error) {
	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		return nil, domain.NewValidation("NOMBRE_REQUERIDO", "el nombre es requerido")
	}
	existente, err := uc.repo.GetByNombre(nombre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflict("NOMBRE_DUPLICADO", "ya existe una categoría con ese nombre").
			WithDetail("nombre", nombre)
	}
	categoria := &entity.Categoria{
		ID:          uuid.New().String(),
		Nombre:      nombre,
		Descripcion: in.Descripcion,
		Activo:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(categoria); err != nil {
		return nil, err
	}
	uc.invalidar(ctx)
	return catalogoResponse(categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.Activo, categoria.CreatedAt), nil
}

// GetByID obtiene una categoría; (nil, nil) si no existe.
func (uc *CategoriaUseCase) GetByID(id string) (*dto.CatalogoResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, nil
	}
	return catalogoResponse(categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.Activo, categoria.CreatedAt), nil
}

// Update actualización parcial (renombres chequean unicidad).
func (uc *CategoriaUseCase) Update(ctx context.Context, id string, in dto.UpdateCatalogoRequest) (*dto.CatalogoResponse, error) {
	categoria, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		nombre := strings.TrimSpace(*in.Nombre)
		if nombre == "" {
			return nil, domain.NewValidation("NOMBRE_REQUERIDO", "el nombre es requerido")
		}
		if nombre != categoria.Nombre {
			existente, err := uc.repo.GetByNombre(nombre)
			if err != nil {
				return nil, err
			}
			if existente != nil {
				return nil, domain.NewConflict("NOMBRE_DUPLICADO", "ya existe una categoría con ese nombre").
					WithDetail("nombre", nombre)
			}
		}
		categoria.Nombre = nombre
	}
	if in.Descripcion != nil {
		categoria.Descripcion = *in.Descripcion
	}
	if in.Activo != nil {
		categoria.Activo = *in.Activo
	}
	if err := uc.repo.Update(categoria); err != nil {
		return nil, err
	}
	uc.invalidar(ctx)
	return catalogoResponse(categoria.ID, categoria.Nombre, categoria.Descripcion, categoria.Activo, categoria.CreatedAt), nil
}

// List lista categorías. El listado de solo activas se sirve desde caché
// cuando está disponible.
func (uc *CategoriaUseCase) List(ctx context.Context, soloActivas bool) ([]dto.CatalogoResponse, error) {
	if soloActivas && uc.cache != nil {
		var cacheadas []dto.CatalogoResponse
		ok, err := uc.cache.Get(ctx, claveCacheCategorias, &cacheadas)
		if err != nil {
			uc.log.Warn().Err(err).Msg("fallo leyendo caché de categorías")
		} else if ok {
			return cacheadas, nil
		}
	}
	lista, err := uc.repo.List(soloActivas)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogoResponse, 0, len(lista))
	for _, c := range lista {
		items = append(items, *catalogoResponse(c.ID, c.Nombre, c.Descripcion, c.Activo, c.CreatedAt))
	}
	if soloActivas && uc.cache != nil {
		if err := uc.cache.Set(ctx, claveCacheCategorias, items); err != nil {
			uc.log.Warn().Err(err).Msg("fallo escribiendo caché de categorías")
		}
	}
	return items, nil
}

func (uc *CategoriaUseCase) invalidar(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, claveCacheCategorias); err != nil {
		uc.log.Warn().Err(err).Msg("fallo invalidando caché de categorías")
	}
}

func catalogoResponse(id, nombre, descripcion string, activo bool, creado time.Time) *dto.CatalogoResponse {
	return &dto.CatalogoResponse{
		ID:          id,
		Nombre:      nombre,
		Descripcion: descripcion,
		Activo:      activo,
		CreatedAt:   creado,
	}
}
