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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación del puerto CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría nueva.
func (r *CategoriaRepo) Create(c *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id, nombre, descripcion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Nombre, c.Descripcion, c.Activo, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("NOMBRE_DUPLICADO", "ya existe una categoría con ese nombre")
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	return r.una(`SELECT id, nombre, descripcion, activo, created_at FROM categorias WHERE id = $1`, id)
}

// GetByNombre obtiene una categoría por nombre; (nil, nil) si no existe.
func (r *CategoriaRepo) GetByNombre(nombre string) (*entity.Categoria, error) {
	return r.una(`SELECT id, nombre, descripcion, activo, created_at FROM categorias WHERE nombre = $1`, nombre)
}

// Update persiste los campos mutables de una categoría.
func (r *CategoriaRepo) Update(c *entity.Categoria) error {
	query := `UPDATE categorias SET nombre = $2, descripcion = $3, activo = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, c.ID, c.Nombre, c.Descripcion, c.Activo)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("NOMBRE_DUPLICADO", "ya existe una categoría con ese nombre")
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("CATEGORIA_NO_ENCONTRADA", "categoría no encontrada")
	}
	return nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoriaRepo) List(soloActivas bool) ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, activo, created_at FROM categorias`
	if soloActivas {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var categorias []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt); err != nil {
			return nil, err
		}
		categorias = append(categorias, &c)
	}
	return categorias, rows.Err()
}

func (r *CategoriaRepo) una(query string, args ...any) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), query, args...).
		Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}
