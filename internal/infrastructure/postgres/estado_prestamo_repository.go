package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

var _ repository.EstadoPrestamoRepository = (*EstadoPrestamoRepo)(nil)

// EstadoPrestamoRepo implementación del puerto EstadoPrestamoRepository sobre PostgreSQL.
// Los cinco estados canónicos se siembran por migración; Create existe para el seed.
type EstadoPrestamoRepo struct {
	q Querier
}

// NewEstadoPrestamoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstadoPrestamoRepository(q Querier) *EstadoPrestamoRepo {
	return &EstadoPrestamoRepo{q: q}
}

// Create persiste un estado de préstamo.
func (r *EstadoPrestamoRepo) Create(e *entity.EstadoPrestamo) error {
	query := `
		INSERT INTO estados_prestamo (id, nombre, descripcion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.Nombre, e.Descripcion, e.Activo, e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("NOMBRE_DUPLICADO", "ya existe un estado con ese nombre")
		}
		return fmt.Errorf("insert estado prestamo: %w", err)
	}
	return nil
}

// GetByID obtiene un estado por ID; (nil, nil) si no existe.
func (r *EstadoPrestamoRepo) GetByID(id string) (*entity.EstadoPrestamo, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM estados_prestamo WHERE id = $1`, id)
}

// GetByNombre obtiene un estado por nombre; (nil, nil) si no existe.
func (r *EstadoPrestamoRepo) GetByNombre(nombre string) (*entity.EstadoPrestamo, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM estados_prestamo WHERE nombre = $1`, nombre)
}

// List lista estados de préstamo.
func (r *EstadoPrestamoRepo) List(soloActivos bool) ([]*entity.EstadoPrestamo, error) {
	query := `SELECT id, nombre, descripcion, activo, created_at FROM estados_prestamo`
	if soloActivos {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list estados prestamo: %w", err)
	}
	defer rows.Close()

	var estados []*entity.EstadoPrestamo
	for rows.Next() {
		var e entity.EstadoPrestamo
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.Activo, &e.CreatedAt); err != nil {
			return nil, err
		}
		estados = append(estados, &e)
	}
	return estados, rows.Err()
}

func (r *EstadoPrestamoRepo) uno(query string, args ...any) (*entity.EstadoPrestamo, error) {
	var e entity.EstadoPrestamo
	err := r.q.QueryRow(context.Background(), query, args...).
		Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.Activo, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estado prestamo: %w", err)
	}
	return &e, nil
}
