package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"

	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

var _ repository.ArticuloRepository = (*ArticuloRepo)(nil)

const columnasArticulo = `id, codigo, nombre, descripcion, equipo, temporada, talla, color,
		precio, categoria_id, estado_articulo_id, ubicacion, stock, activo, created_at, updated_at`

// ArticuloRepo implementación del puerto ArticuloRepository sobre PostgreSQL (usable con pool o tx).
type ArticuloRepo struct {
	q Querier
}

// NewArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewArticuloRepository(q Querier) *ArticuloRepo {
	return &ArticuloRepo{q: q}
}

// Create persiste un artículo nuevo.
func (r *ArticuloRepo) Create(a *entity.Articulo) error {
	query := `
		INSERT INTO articulos (id, codigo, nombre, descripcion, equipo, temporada, talla, color,
			precio, categoria_id, estado_articulo_id, ubicacion, stock, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Codigo, a.Nombre, a.Descripcion, a.Equipo, a.Temporada, a.Talla, a.Color,
		a.Precio, a.CategoriaID, a.EstadoArticuloID, a.Ubicacion, a.Stock, a.Activo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("CODIGO_DUPLICADO", "ya existe un artículo con ese código")
		}
		return fmt.Errorf("insert articulo: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; (nil, nil) si no existe.
func (r *ArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	query := `SELECT ` + columnasArticulo + ` FROM articulos WHERE id = $1`
	return r.uno(query, id)
}

// GetForUpdate obtiene un artículo bloqueando su fila. Solo tiene sentido
// dentro de una transacción.
func (r *ArticuloRepo) GetForUpdate(id string) (*entity.Articulo, error) {
	query := `SELECT ` + columnasArticulo + ` FROM articulos WHERE id = $1 FOR UPDATE`
	return r.uno(query, id)
}

// GetByCodigo obtiene un artículo por código; (nil, nil) si no existe.
func (r *ArticuloRepo) GetByCodigo(codigo string) (*entity.Articulo, error) {
	query := `SELECT ` + columnasArticulo + ` FROM articulos WHERE codigo = $1`
	return r.uno(query, codigo)
}

// Update persiste todos los campos mutables de un artículo.
func (r *ArticuloRepo) Update(a *entity.Articulo) error {
	query := `
		UPDATE articulos
		SET nombre = $2, descripcion = $3, equipo = $4, temporada = $5, talla = $6, color = $7,
			precio = $8, categoria_id = $9, estado_articulo_id = $10, ubicacion = $11,
			stock = $12, activo = $13, updated_at = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.Nombre, a.Descripcion, a.Equipo, a.Temporada, a.Talla, a.Color,
		a.Precio, a.CategoriaID, a.EstadoArticuloID, a.Ubicacion, a.Stock, a.Activo, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update articulo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ARTICULO_NO_ENCONTRADO", "artículo no encontrado")
	}
	return nil
}

// plegarAcentosSQL espejo en SQL del plegado de usecase.NormalizarBusqueda:
// minúsculas y sin tildes, para que el patrón ya plegado case con valores
// almacenados con acentos.
const plegarAcentosSQL = "translate(lower(%s), 'áéíóúüñ', 'aeiouun')"

func construirListaArticulos(f repository.FiltroArticulos) (string, []interface{}, error) {
	ds := goqu.Dialect("postgres").
		From("articulos").
		Select(goqu.L(columnasArticulo)).
		Prepared(true)

	if f.Busqueda != "" {
		patron := "%" + f.Busqueda + "%"
		ds = ds.Where(goqu.Or(
			goqu.L(fmt.Sprintf(plegarAcentosSQL, "nombre")).Like(patron),
			goqu.L(fmt.Sprintf(plegarAcentosSQL, "equipo")).Like(patron),
			goqu.L(fmt.Sprintf(plegarAcentosSQL, "codigo")).Like(patron),
		))
	}
	if f.CategoriaID != "" {
		ds = ds.Where(goqu.C("categoria_id").Eq(f.CategoriaID))
	}
	if f.EstadoID != "" {
		ds = ds.Where(goqu.C("estado_articulo_id").Eq(f.EstadoID))
	}
	if f.SoloActivos {
		ds = ds.Where(goqu.C("activo").IsTrue())
	}
	ds = ds.Order(goqu.C("codigo").Asc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}
	return ds.ToSQL()
}

// List lista artículos con filtros dinámicos y paginación. La búsqueda libre
// pliega acentos en ambos lados: el término llega ya normalizado y las
// columnas se pliegan con translate(lower(...)).
func (r *ArticuloRepo) List(f repository.FiltroArticulos) ([]*entity.Articulo, error) {
	query, args, err := construirListaArticulos(f)
	if err != nil {
		return nil, fmt.Errorf("build list articulos: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articulos: %w", err)
	}
	defer rows.Close()

	var articulos []*entity.Articulo
	for rows.Next() {
		a, err := escanearArticulo(rows)
		if err != nil {
			return nil, err
		}
		articulos = append(articulos, a)
	}
	return articulos, rows.Err()
}

func (r *ArticuloRepo) uno(query string, args ...any) (*entity.Articulo, error) {
	a, err := escanearArticulo(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get articulo: %w", err)
	}
	return a, nil
}

func escanearArticulo(row pgx.Row) (*entity.Articulo, error) {
	var a entity.Articulo
	err := row.Scan(
		&a.ID, &a.Codigo, &a.Nombre, &a.Descripcion, &a.Equipo, &a.Temporada, &a.Talla, &a.Color,
		&a.Precio, &a.CategoriaID, &a.EstadoArticuloID, &a.Ubicacion, &a.Stock, &a.Activo,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
