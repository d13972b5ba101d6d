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

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación del puerto RolRepository sobre PostgreSQL.
// Los roles se siembran con cmd/seed; no hay escritura vía API.
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// Create persiste un rol nuevo.
func (r *RolRepo) Create(rol *entity.Rol) error {
	query := `
		INSERT INTO roles (id, nombre, descripcion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, rol.ID, rol.Nombre, rol.Descripcion, rol.Activo, rol.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("ROL_DUPLICADO", "ya existe un rol con ese nombre")
		}
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID; (nil, nil) si no existe.
func (r *RolRepo) GetByID(id string) (*entity.Rol, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM roles WHERE id = $1`, id)
}

// GetByNombre obtiene un rol por nombre; (nil, nil) si no existe.
func (r *RolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	return r.uno(`SELECT id, nombre, descripcion, activo, created_at FROM roles WHERE nombre = $1`, nombre)
}

// List lista todos los roles.
func (r *RolRepo) List() ([]*entity.Rol, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, descripcion, activo, created_at FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var roles []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.Nombre, &rol.Descripcion, &rol.Activo, &rol.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, &rol)
	}
	return roles, rows.Err()
}

func (r *RolRepo) uno(query string, args ...any) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(context.Background(), query, args...).
		Scan(&rol.ID, &rol.Nombre, &rol.Descripcion, &rol.Activo, &rol.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &rol, nil
}
