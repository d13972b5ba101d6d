package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

var _ repository.PrestamoRepository = (*PrestamoRepo)(nil)

const columnasPrestamo = `p.id, p.usuario_id, p.articulo_id, p.estado_prestamo_id,
		p.fecha_solicitud, p.fecha_entrega_estimada, p.fecha_entrega_real,
		p.fecha_devolucion_estimada, p.fecha_devolucion_real,
		p.aprobado_por, p.fecha_aprobacion, p.notas_aprobacion, p.observaciones,
		p.created_at, p.updated_at`

// PrestamoRepo implementación del puerto PrestamoRepository sobre PostgreSQL
// (usable con pool o tx). Los listados con filtros se arman con goqu.
type PrestamoRepo struct {
	q Querier
}

// NewPrestamoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrestamoRepository(q Querier) *PrestamoRepo {
	return &PrestamoRepo{q: q}
}

// Create persiste un préstamo nuevo.
func (r *PrestamoRepo) Create(p *entity.Prestamo) error {
	query := `
		INSERT INTO prestamos (id, usuario_id, articulo_id, estado_prestamo_id,
			fecha_solicitud, fecha_entrega_estimada, fecha_entrega_real,
			fecha_devolucion_estimada, fecha_devolucion_real,
			aprobado_por, fecha_aprobacion, notas_aprobacion, observaciones,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UsuarioID, p.ArticuloID, p.EstadoPrestamoID,
		p.FechaSolicitud, p.FechaEntregaEstimada, p.FechaEntregaReal,
		p.FechaDevolucionEstimada, p.FechaDevolucionReal,
		p.AprobadoPor, p.FechaAprobacion, p.NotasAprobacion, p.Observaciones,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert prestamo: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID; (nil, nil) si no existe.
func (r *PrestamoRepo) GetByID(id string) (*entity.Prestamo, error) {
	query := `SELECT ` + columnasPrestamo + ` FROM prestamos p WHERE p.id = $1`
	p, err := escanearPrestamo(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prestamo: %w", err)
	}
	return p, nil
}

// Update persiste todos los campos mutables de un préstamo.
func (r *PrestamoRepo) Update(p *entity.Prestamo) error {
	query := `
		UPDATE prestamos
		SET estado_prestamo_id = $2, fecha_entrega_real = $3,
			fecha_devolucion_estimada = $4, fecha_devolucion_real = $5,
			aprobado_por = $6, fecha_aprobacion = $7, notas_aprobacion = $8,
			observaciones = $9, updated_at = $10
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		p.ID, p.EstadoPrestamoID, p.FechaEntregaReal,
		p.FechaDevolucionEstimada, p.FechaDevolucionReal,
		p.AprobadoPor, p.FechaAprobacion, p.NotasAprobacion,
		p.Observaciones, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update prestamo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("PRESTAMO_NO_ENCONTRADO", "préstamo no encontrado")
	}
	return nil
}

// ListActivosPorArticulo lista los préstamos activos de un artículo bloqueando
// sus filas. Debe ejecutarse dentro de la transacción de la solicitud.
func (r *PrestamoRepo) ListActivosPorArticulo(articuloID string, estadosActivos []string) ([]*entity.Prestamo, error) {
	query := `
		SELECT ` + columnasPrestamo + `
		FROM prestamos p
		JOIN estados_prestamo e ON e.id = p.estado_prestamo_id
		WHERE p.articulo_id = $1 AND e.nombre = ANY($2)
		FOR UPDATE OF p`
	rows, err := r.q.Query(context.Background(), query, articuloID, estadosActivos)
	if err != nil {
		return nil, fmt.Errorf("list prestamos activos: %w", err)
	}
	defer rows.Close()
	return recolectarPrestamos(rows)
}

// List lista préstamos con filtros dinámicos y paginación.
func (r *PrestamoRepo) List(f repository.FiltroPrestamos) ([]*entity.Prestamo, error) {
	ds := goqu.Dialect("postgres").
		From(goqu.T("prestamos").As("p")).
		Select(goqu.L(columnasPrestamo)).
		Prepared(true)
	ds = aplicarFiltroPrestamos(ds, f)
	ds = ds.Order(goqu.I("p.fecha_solicitud").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list prestamos: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prestamos: %w", err)
	}
	defer rows.Close()
	return recolectarPrestamos(rows)
}

// ListReporte lista filas desnormalizadas para el reporte de préstamos
// (nombres de estado, usuario y artículo resueltos por JOIN).
func (r *PrestamoRepo) ListReporte(f repository.FiltroPrestamos) ([]*repository.FilaReportePrestamo, error) {
	ds := goqu.Dialect("postgres").
		From(goqu.T("prestamos").As("p")).
		Join(goqu.T("estados_prestamo").As("e"), goqu.On(goqu.I("e.id").Eq(goqu.I("p.estado_prestamo_id")))).
		Join(goqu.T("usuarios").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("p.usuario_id")))).
		Join(goqu.T("articulos").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("p.articulo_id")))).
		Select(goqu.L(columnasPrestamo + `,
		e.nombre, u.nombres || ' ' || u.apellidos, a.codigo, a.nombre`)).
		Prepared(true)
	ds = aplicarFiltroPrestamos(ds, f)
	ds = ds.Order(goqu.I("p.fecha_solicitud").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build reporte prestamos: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("reporte prestamos: %w", err)
	}
	defer rows.Close()

	var filas []*repository.FilaReportePrestamo
	for rows.Next() {
		var fila repository.FilaReportePrestamo
		p := &fila.Prestamo
		err := rows.Scan(
			&p.ID, &p.UsuarioID, &p.ArticuloID, &p.EstadoPrestamoID,
			&p.FechaSolicitud, &p.FechaEntregaEstimada, &p.FechaEntregaReal,
			&p.FechaDevolucionEstimada, &p.FechaDevolucionReal,
			&p.AprobadoPor, &p.FechaAprobacion, &p.NotasAprobacion, &p.Observaciones,
			&p.CreatedAt, &p.UpdatedAt,
			&fila.EstadoNombre, &fila.UsuarioNombre, &fila.ArticuloCodigo, &fila.ArticuloNombre,
		)
		if err != nil {
			return nil, err
		}
		filas = append(filas, &fila)
	}
	return filas, rows.Err()
}

// aplicarFiltroPrestamos agrega las condiciones WHERE comunes a List y ListReporte.
func aplicarFiltroPrestamos(ds *goqu.SelectDataset, f repository.FiltroPrestamos) *goqu.SelectDataset {
	if f.UsuarioID != "" {
		ds = ds.Where(goqu.I("p.usuario_id").Eq(f.UsuarioID))
	}
	if f.ArticuloID != "" {
		ds = ds.Where(goqu.I("p.articulo_id").Eq(f.ArticuloID))
	}
	if f.EstadoID != "" {
		ds = ds.Where(goqu.I("p.estado_prestamo_id").Eq(f.EstadoID))
	}
	if f.Desde != nil {
		ds = ds.Where(goqu.I("p.fecha_solicitud").Gte(*f.Desde))
	}
	if f.Hasta != nil {
		ds = ds.Where(goqu.I("p.fecha_solicitud").Lte(*f.Hasta))
	}
	if f.SoloVencidos {
		ds = ds.Where(
			goqu.I("p.fecha_devolucion_real").IsNull(),
			goqu.I("p.fecha_devolucion_estimada").IsNotNull(),
			goqu.I("p.fecha_devolucion_estimada").Lt(f.Ahora),
		)
	}
	return ds
}

func recolectarPrestamos(rows pgx.Rows) ([]*entity.Prestamo, error) {
	var prestamos []*entity.Prestamo
	for rows.Next() {
		p, err := escanearPrestamo(rows)
		if err != nil {
			return nil, err
		}
		prestamos = append(prestamos, p)
	}
	return prestamos, rows.Err()
}

func escanearPrestamo(row pgx.Row) (*entity.Prestamo, error) {
	var p entity.Prestamo
	err := row.Scan(
		&p.ID, &p.UsuarioID, &p.ArticuloID, &p.EstadoPrestamoID,
		&p.FechaSolicitud, &p.FechaEntregaEstimada, &p.FechaEntregaReal,
		&p.FechaDevolucionEstimada, &p.FechaDevolucionReal,
		&p.AprobadoPor, &p.FechaAprobacion, &p.NotasAprobacion, &p.Observaciones,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
