package usecase_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeArticuloRepo struct {
	porID     map[string]*entity.Articulo
	porCodigo map[string]*entity.Articulo
}

func nuevoFakeArticuloRepo() *fakeArticuloRepo {
	return &fakeArticuloRepo{
		porID:     map[string]*entity.Articulo{},
		porCodigo: map[string]*entity.Articulo{},
	}
}

func (f *fakeArticuloRepo) Create(a *entity.Articulo) error {
	if _, ok := f.porCodigo[a.Codigo]; ok {
		return domain.NewConflict("CODIGO_DUPLICADO", "ya existe un artículo con ese código")
	}
	f.porID[a.ID] = a
	f.porCodigo[a.Codigo] = a
	return nil
}

func (f *fakeArticuloRepo) GetByID(id string) (*entity.Articulo, error) { return f.porID[id], nil }
func (f *fakeArticuloRepo) GetForUpdate(id string) (*entity.Articulo, error) {
	return f.porID[id], nil
}
func (f *fakeArticuloRepo) GetByCodigo(codigo string) (*entity.Articulo, error) {
	return f.porCodigo[codigo], nil
}
func (f *fakeArticuloRepo) Update(a *entity.Articulo) error {
	f.porID[a.ID] = a
	f.porCodigo[a.Codigo] = a
	return nil
}

func (f *fakeArticuloRepo) List(filtro repository.FiltroArticulos) ([]*entity.Articulo, error) {
	var lista []*entity.Articulo
	for _, a := range f.porID {
		if filtro.SoloActivos && !a.Activo {
			continue
		}
		if filtro.Busqueda != "" && !coincideBusqueda(a, filtro.Busqueda) {
			continue
		}
		lista = append(lista, a)
	}
	return lista, nil
}

// coincideBusqueda pliega las columnas igual que translate(lower(...)) en el
// adaptador de PostgreSQL; el término llega ya plegado desde el caso de uso.
func coincideBusqueda(a *entity.Articulo, termino string) bool {
	for _, campo := range []string{a.Nombre, a.Equipo, a.Codigo} {
		if strings.Contains(usecase.NormalizarBusqueda(campo), termino) {
			return true
		}
	}
	return false
}

type fakeCategoriaRepo struct {
	porID map[string]*entity.Categoria
}

func (f *fakeCategoriaRepo) Create(c *entity.Categoria) error              { f.porID[c.ID] = c; return nil }
func (f *fakeCategoriaRepo) GetByID(id string) (*entity.Categoria, error)  { return f.porID[id], nil }
func (f *fakeCategoriaRepo) GetByNombre(string) (*entity.Categoria, error) { return nil, nil }
func (f *fakeCategoriaRepo) Update(c *entity.Categoria) error              { f.porID[c.ID] = c; return nil }
func (f *fakeCategoriaRepo) List(bool) ([]*entity.Categoria, error)        { return nil, nil }

type fakeEstadoArticuloRepo struct {
	porID map[string]*entity.EstadoArticulo
}

func (f *fakeEstadoArticuloRepo) Create(e *entity.EstadoArticulo) error {
	f.porID[e.ID] = e
	return nil
}
func (f *fakeEstadoArticuloRepo) GetByID(id string) (*entity.EstadoArticulo, error) {
	return f.porID[id], nil
}
func (f *fakeEstadoArticuloRepo) GetByNombre(string) (*entity.EstadoArticulo, error) {
	return nil, nil
}
func (f *fakeEstadoArticuloRepo) Update(e *entity.EstadoArticulo) error {
	f.porID[e.ID] = e
	return nil
}
func (f *fakeEstadoArticuloRepo) List(bool) ([]*entity.EstadoArticulo, error) {
	var lista []*entity.EstadoArticulo
	for _, e := range f.porID {
		lista = append(lista, e)
	}
	return lista, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

const (
	idCategoria      = "cat-retro"
	idEstadoDisp     = "est-disponible"
	idEstadoMantenim = "est-mantenimiento"
)

func nuevoArticuloUC() (*usecase.ArticuloUseCase, *fakeArticuloRepo) {
	articulos := nuevoFakeArticuloRepo()
	categorias := &fakeCategoriaRepo{porID: map[string]*entity.Categoria{
		idCategoria: {ID: idCategoria, Nombre: "Retro", Activo: true, CreatedAt: time.Now()},
	}}
	estados := &fakeEstadoArticuloRepo{porID: map[string]*entity.EstadoArticulo{
		idEstadoDisp:     {ID: idEstadoDisp, Nombre: entity.EstadoArticuloDisponible, Activo: true},
		idEstadoMantenim: {ID: idEstadoMantenim, Nombre: "En Mantenimiento", Activo: true},
	}}
	return usecase.NewArticuloUseCase(articulos, categorias, estados), articulos
}

func solicitudValida() dto.CreateArticuloRequest {
	precio := decimal.NewFromFloat(89.90)
	return dto.CreateArticuloRequest{
		Codigo:           "bra-1970-10",
		Nombre:           "Brasil 1970 local",
		Equipo:           "Brasil",
		Temporada:        "1970",
		Talla:            "M",
		Precio:           &precio,
		CategoriaID:      idCategoria,
		EstadoArticuloID: idEstadoDisp,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaCodigoYDerivaDisponible(t *testing.T) {
	uc, _ := nuevoArticuloUC()

	out, err := uc.Create(solicitudValida())
	require.NoError(t, err)

	assert.Equal(t, "BRA-1970-10", out.Codigo, "el código debe normalizarse a mayúsculas")
	assert.Equal(t, 1, out.Stock, "stock por defecto 1")
	assert.True(t, out.Activo)
	assert.True(t, out.Disponible, "activo y en estado Disponible")
}

func TestCreate_EstadoMantenimiento_NoDisponible(t *testing.T) {
	uc, _ := nuevoArticuloUC()
	in := solicitudValida()
	in.EstadoArticuloID = idEstadoMantenim

	out, err := uc.Create(in)
	require.NoError(t, err)
	assert.False(t, out.Disponible, "En Mantenimiento no se presta")
}

func TestCreate_CodigoInvalido(t *testing.T) {
	uc, _ := nuevoArticuloUC()

	casos := []string{"", "cod con espacios", "código-ñ", "UN-CODIGO-DEMASIADO-LARGO-XX"}
	for _, codigo := range casos {
		in := solicitudValida()
		in.Codigo = codigo
		_, err := uc.Create(in)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "código %q debe rechazarse", codigo)
	}
}

func TestCreate_PrecioFueraDeRango(t *testing.T) {
	uc, _ := nuevoArticuloUC()

	for _, valor := range []float64{0, -5, 10000} {
		precio := decimal.NewFromFloat(valor)
		in := solicitudValida()
		in.Precio = &precio
		_, err := uc.Create(in)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "precio %v debe rechazarse", valor)
		derr := domain.AsError(err)
		require.NotNil(t, derr)
		assert.Equal(t, "PRECIO_FUERA_DE_RANGO", derr.Code)
	}
}

func TestCreate_StockFueraDeRango(t *testing.T) {
	uc, _ := nuevoArticuloUC()

	for _, valor := range []int{-1, 1000} {
		stock := valor
		in := solicitudValida()
		in.Stock = &stock
		_, err := uc.Create(in)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "stock %d debe rechazarse", valor)
	}

	// 0 y 999 son válidos
	for i, valor := range []int{0, 999} {
		stock := valor
		in := solicitudValida()
		in.Codigo = in.Codigo + "-" + string(rune('A'+i))
		in.Stock = &stock
		out, err := uc.Create(in)
		require.NoError(t, err)
		assert.Equal(t, valor, out.Stock)
	}
}

func TestCreate_CodigoDuplicado_Conflicto(t *testing.T) {
	uc, _ := nuevoArticuloUC()

	_, err := uc.Create(solicitudValida())
	require.NoError(t, err)

	// Mismo código con distinta capitalización
	in := solicitudValida()
	in.Codigo = "BRA-1970-10"
	_, err = uc.Create(in)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestCreate_CategoriaInexistente_NotFound(t *testing.T) {
	uc, _ := nuevoArticuloUC()
	in := solicitudValida()
	in.CategoriaID = "cat-fantasma"

	_, err := uc.Create(in)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestDesactivar_ApagaDisponibilidad(t *testing.T) {
	uc, _ := nuevoArticuloUC()
	creado, err := uc.Create(solicitudValida())
	require.NoError(t, err)

	out, err := uc.Desactivar(creado.ID)
	require.NoError(t, err)
	assert.False(t, out.Activo)
	assert.False(t, out.Disponible, "un artículo inactivo nunca está disponible")
}

func TestList_BusquedaEncuentraNombresAcentuados(t *testing.T) {
	uc, _ := nuevoArticuloUC()
	in := solicitudValida()
	in.Codigo = "ECU-FUT-01"
	in.Nombre = "Camiseta Fútbol"
	in.Equipo = "Selección"
	_, err := uc.Create(in)
	require.NoError(t, err)

	// El mismo nombre acentuado, su versión plana y el equipo acentuado
	// deben encontrar el artículo.
	for _, termino := range []string{"Fútbol", "futbol", "FUTBOL", "seleccion"} {
		out, err := uc.List(termino, "", "", false, dto.PageRequest{})
		require.NoError(t, err)
		require.Len(t, out.Items, 1, "el término %q debe encontrar el artículo", termino)
		assert.Equal(t, "ECU-FUT-01", out.Items[0].Codigo)
	}

	out, err := uc.List("basquet", "", "", false, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestNormalizarBusqueda_PliegaAcentos(t *testing.T) {
	casos := map[string]string{
		"Días":       "dias",
		"  Camión  ": "camion",
		"BRASIL":     "brasil",
		"niño":       "nino",
	}
	for entrada, esperado := range casos {
		assert.Equal(t, esperado, usecase.NormalizarBusqueda(entrada))
	}
}
