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

var _ repository.EstadoArticuloRepository = (*EstadoArticuloRepo)(nil)

// EstadoArticuloRepo implementación del puerto EstadoArticuloRepository sobre PostgreSQL.
type EstadoArticuloRepo struct {
	q Querier
}

// NewEstadoArticuloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEstadoArticuloRepository(q Querier) *EstadoArticuloRepo {
	return &EstadoArticuloRepo{q: q}
}

// Create persiste un estado de artículo nuevo.
func (r *EstadoArticuloRepo) Create(e *entity.EstadoArticulo) error {
	query := `
		INSERT INTO estados_articulo (id, nombre, descripcion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.Nombre, e.Descripcion, e.Activo, e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("NOMBRE_DUPLICADO", "ya existe un estado con ese nombre")
		}
		return fmt.Errorf("insert estado articulo: %w", err)
	}
	return nil
}

// GetByID obtiene un estado por ID; (nil, nil) si no existe.
func (r *EstadoArticuloRepo) GetByID(id string) (*entity.EstadoArticulo, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM estados_articulo WHERE id = $1`, id)
}

// GetByNombre obtiene un estado por nombre; (nil, nil) si no existe.
func (r *EstadoArticuloRepo) GetByNombre(nombre string) (*entity.EstadoArticulo, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM estados_articulo WHERE nombre = $1`, nombre)
}

// Update persiste los campos mutables de un estado.
func (r *EstadoArticuloRepo) Update(e *entity.EstadoArticulo) error {
	query := `UPDATE estados_articulo SET nombre = $2, descripcion = $3, activo = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, e.ID, e.Nombre, e.Descripcion, e.Activo)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("NOMBRE_DUPLICADO", "ya existe un estado con ese nombre")
		}
		return fmt.Errorf("update estado articulo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("ESTADO_NO_ENCONTRADO", "estado de artículo no encontrado")
	}
	return nil
}

// List lista estados de artículo ordenados por nombre.
func (r *EstadoArticuloRepo) List(soloActivos bool) ([]*entity.EstadoArticulo, error) {
	query := `SELECT id, nombre, descripcion, activo, created_at FROM estados_articulo`
	if soloActivos {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list estados articulo: %w", err)
	}
	defer rows.Close()

	var estados []*entity.EstadoArticulo
	for rows.Next() {
		var e entity.EstadoArticulo
		if err := rows.Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.Activo, &e.CreatedAt); err != nil {
			return nil, err
		}
		estados = append(estados, &e)
	}
	return estados, rows.Err()
}

func (r *EstadoArticuloRepo) uno(query string, args ...any) (*entity.EstadoArticulo, error) {
	var e entity.EstadoArticulo
	err := r.q.QueryRow(context.Background(), query, args...).
		Scan(&e.ID, &e.Nombre, &e.Descripcion, &e.Activo, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get estado articulo: %w", err)
	}
	return &e, nil
}
