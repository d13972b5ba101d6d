package usecase

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// Límites de validación de artículos.
const (
	maxLenCodigo = 20
	maxStock     = 999
	stockDefecto = 1
)

// codigoValido: mayúsculas, dígitos y guiones.
var codigoValido = regexp.MustCompile(`^[A-Z0-9-]+$`)

var precioMaximo = decimal.NewFromInt(10000)

// quitarAcentos descompone (NFD), elimina marcas diacríticas y recompone.
var quitarAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ArticuloUseCase casos de uso CRUD para artículos (camisetas).
// El préstamo de un artículo se maneja en application/prestamo; aquí solo
// inventario y disponibilidad derivada.
type ArticuloUseCase struct {
	repo       repository.ArticuloRepository
	categorias repository.CategoriaRepository
	estados    repository.EstadoArticuloRepository
}

// NewArticuloUseCase construye el caso de uso.
func NewArticuloUseCase(
	repo repository.ArticuloRepository,
	categorias repository.CategoriaRepository,
	estados repository.EstadoArticuloRepository,
) *ArticuloUseCase {
	return &ArticuloUseCase{repo: repo, categorias: categorias, estados: estados}
}

// Create da de alta una camiseta. El código se normaliza a mayúsculas y debe
// ser único; stock por defecto 1.
func (uc *ArticuloUseCase) Create(in dto.CreateArticuloRequest) (*dto.ArticuloResponse, error) {
	codigo := strings.ToUpper(strings.TrimSpace(in.Codigo))
	if err := validarCodigo(codigo); err != nil {
		return nil, err
	}
	if in.Nombre == "" || in.Equipo == "" {
		return nil, domain.NewValidation("CAMPOS_REQUERIDOS", "nombre y equipo son requeridos")
	}
	if err := validarPrecio(in.Precio); err != nil {
		return nil, err
	}
	stock := stockDefecto
	if in.Stock != nil {
		stock = *in.Stock
	}
	if err := validarStock(stock); err != nil {
		return nil, err
	}

	existente, err := uc.repo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflict("CODIGO_DUPLICADO", "ya existe un artículo con ese código").
			WithDetail("codigo", codigo)
	}

	categoria, err := uc.categorias.GetByID(in.CategoriaID)
	if err != nil {
		return nil, err
	}
	if categoria == nil {
		return nil, domain.NewNotFound("CATEGORIA_NO_ENCONTRADA", "categoría no encontrada")
	}
	estado, err := uc.estados.GetByID(in.EstadoArticuloID)
	if err != nil {
		return nil, err
	}
	if estado == nil {
		return nil, domain.NewNotFound("ESTADO_NO_ENCONTRADO", "estado de artículo no encontrado")
	}

	now := time.Now()
	articulo := &entity.Articulo{
		ID:               uuid.New().String(),
		Codigo:           codigo,
		Nombre:           in.Nombre,
		Descripcion:      in.Descripcion,
		Equipo:           in.Equipo,
		Temporada:        in.Temporada,
		Talla:            in.Talla,
		Color:            in.Color,
		Precio:           in.Precio,
		CategoriaID:      in.CategoriaID,
		EstadoArticuloID: in.EstadoArticuloID,
		Ubicacion:        in.Ubicacion,
		Stock:            stock,
		Activo:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(articulo); err != nil {
		return nil, err
	}
	return uc.aResponse(articulo, estado.Nombre), nil
}

// GetByID obtiene un artículo con su disponibilidad derivada.
func (uc *ArticuloUseCase) GetByID(id string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, nil
	}
	estadoNombre, err := uc.nombreEstado(articulo.EstadoArticuloID)
	if err != nil {
		return nil, err
	}
	return uc.aResponse(articulo, estadoNombre), nil
}

// Update actualización parcial. El código no se modifica después del alta.
func (uc *ArticuloUseCase) Update(id string, in dto.UpdateArticuloRequest) (*dto.ArticuloResponse, error) {
	articulo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		articulo.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		articulo.Descripcion = *in.Descripcion
	}
	if in.Equipo != nil {
		articulo.Equipo = *in.Equipo
	}
	if in.Temporada != nil {
		articulo.Temporada = *in.Temporada
	}
	if in.Talla != nil {
		articulo.Talla = *in.Talla
	}
	if in.Color != nil {
		articulo.Color = *in.Color
	}
	if in.Precio != nil {
		if err := validarPrecio(in.Precio); err != nil {
			return nil, err
		}
		articulo.Precio = in.Precio
	}
	if in.CategoriaID != nil {
		categoria, err := uc.categorias.GetByID(*in.CategoriaID)
		if err != nil {
			return nil, err
		}
		if categoria == nil {
			return nil, domain.NewNotFound("CATEGORIA_NO_ENCONTRADA", "categoría no encontrada")
		}
		articulo.CategoriaID = *in.CategoriaID
	}
	if in.EstadoArticuloID != nil {
		estado, err := uc.estados.GetByID(*in.EstadoArticuloID)
		if err != nil {
			return nil, err
		}
		if estado == nil {
			return nil, domain.NewNotFound("ESTADO_NO_ENCONTRADO", "estado de artículo no encontrado")
		}
		articulo.EstadoArticuloID = *in.EstadoArticuloID
	}
	if in.Ubicacion != nil {
		articulo.Ubicacion = *in.Ubicacion
	}
	if in.Stock != nil {
		if err := validarStock(*in.Stock); err != nil {
			return nil, err
		}
		articulo.Stock = *in.Stock
	}
	articulo.UpdatedAt = time.Now()
	if err := uc.repo.Update(articulo); err != nil {
		return nil, err
	}
	estadoNombre, err := uc.nombreEstado(articulo.EstadoArticuloID)
	if err != nil {
		return nil, err
	}
	return uc.aResponse(articulo, estadoNombre), nil
}

// Desactivar baja lógica: los artículos nunca se eliminan físicamente.
func (uc *ArticuloUseCase) Desactivar(id string) (*dto.ArticuloResponse, error) {
	articulo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if articulo == nil {
		return nil, nil
	}
	articulo.Activo = false
	articulo.UpdatedAt = time.Now()
	if err := uc.repo.Update(articulo); err != nil {
		return nil, err
	}
	estadoNombre, err := uc.nombreEstado(articulo.EstadoArticuloID)
	if err != nil {
		return nil, err
	}
	return uc.aResponse(articulo, estadoNombre), nil
}

// List lista artículos con búsqueda por texto (sin acentos) y filtros.
func (uc *ArticuloUseCase) List(busqueda, categoriaID, estadoID string, soloActivos bool, page dto.PageRequest) (*dto.ArticuloListResponse, error) {
	page.DefaultPage()
	lista, err := uc.repo.List(repository.FiltroArticulos{
		Busqueda:    NormalizarBusqueda(busqueda),
		CategoriaID: categoriaID,
		EstadoID:    estadoID,
		SoloActivos: soloActivos,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, err
	}
	estados, err := uc.estados.List(false)
	if err != nil {
		return nil, err
	}
	nombrePorID := make(map[string]string, len(estados))
	for _, e := range estados {
		nombrePorID[e.ID] = e.Nombre
	}
	items := make([]dto.ArticuloResponse, 0, len(lista))
	for _, a := range lista {
		items = append(items, *uc.aResponse(a, nombrePorID[a.EstadoArticuloID]))
	}
	return &dto.ArticuloListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// NormalizarBusqueda pliega acentos y baja a minúsculas el término de búsqueda,
// para que "Días" y "dias" encuentren lo mismo.
func NormalizarBusqueda(s string) string {
	plegado, _, err := transform.String(quitarAcentos, s)
	if err != nil {
		plegado = s
	}
	return strings.ToLower(strings.TrimSpace(plegado))
}

func (uc *ArticuloUseCase) nombreEstado(id string) (string, error) {
	estado, err := uc.estados.GetByID(id)
	if err != nil {
		return "", err
	}
	if estado == nil {
		return "", nil
	}
	return estado.Nombre, nil
}

func (uc *ArticuloUseCase) aResponse(a *entity.Articulo, estadoNombre string) *dto.ArticuloResponse {
	return &dto.ArticuloResponse{
		ID:               a.ID,
		Codigo:           a.Codigo,
		Nombre:           a.Nombre,
		Descripcion:      a.Descripcion,
		Equipo:           a.Equipo,
		Temporada:        a.Temporada,
		Talla:            a.Talla,
		Color:            a.Color,
		Precio:           a.Precio,
		CategoriaID:      a.CategoriaID,
		EstadoArticuloID: a.EstadoArticuloID,
		EstadoNombre:     estadoNombre,
		Ubicacion:        a.Ubicacion,
		Stock:            a.Stock,
		Activo:           a.Activo,
		Disponible:       a.Activo && a.Disponible(estadoNombre),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func validarCodigo(codigo string) error {
	if codigo == "" || len(codigo) > maxLenCodigo || !codigoValido.MatchString(codigo) {
		return domain.NewValidation("CODIGO_INVALIDO",
			"el código debe ser alfanumérico en mayúsculas (con guiones) de hasta 20 caracteres")
	}
	return nil
}

func validarPrecio(precio *decimal.Decimal) error {
	if precio == nil {
		return nil
	}
	if !precio.GreaterThan(decimal.Zero) || !precio.LessThan(precioMaximo) {
		return domain.NewValidation("PRECIO_FUERA_DE_RANGO",
			"el precio debe ser mayor a 0 y menor a 10000")
	}
	return nil
}

func validarStock(stock int) error {
	if stock < 0 || stock > maxStock {
		return domain.NewValidation("STOCK_FUERA_DE_RANGO",
			"el stock debe estar entre 0 y 999")
	}
	return nil
}
