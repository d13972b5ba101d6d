package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const columnasUsuario = `id, cedula, nombres, apellidos, email, telefono, password_hash,
		rol_id, activo, ultimo_acceso, created_at, updated_at`

// UsuarioRepo implementación del puerto UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un usuario nuevo.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, cedula, nombres, apellidos, email, telefono, password_hash,
			rol_id, activo, ultimo_acceso, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Cedula, u.Nombres, u.Apellidos, u.Email, u.Telefono, u.PasswordHash,
		u.RolID, u.Activo, u.UltimoAcceso, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("USUARIO_DUPLICADO", "ya existe un usuario con ese email o cédula")
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.uno(`SELECT `+columnasUsuario+` FROM usuarios WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.uno(`SELECT `+columnasUsuario+` FROM usuarios WHERE email = $1`, email)
}

// GetByCedula obtiene un usuario por cédula; (nil, nil) si no existe.
func (r *UsuarioRepo) GetByCedula(cedula string) (*entity.Usuario, error) {
	return r.uno(`SELECT `+columnasUsuario+` FROM usuarios WHERE cedula = $1`, cedula)
}

// Update persiste los campos mutables de un usuario. La cédula y el email no cambian.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	query := `
		UPDATE usuarios
		SET nombres = $2, apellidos = $3, telefono = $4, password_hash = $5,
			rol_id = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		u.ID, u.Nombres, u.Apellidos, u.Telefono, u.PasswordHash, u.RolID, u.Activo, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	return nil
}

// List lista usuarios paginados.
func (r *UsuarioRepo) List(soloActivos bool, limit, offset int) ([]*entity.Usuario, error) {
	query := `SELECT ` + columnasUsuario + ` FROM usuarios`
	if soloActivos {
		query += ` WHERE activo = true`
	}
	query += ` ORDER BY apellidos, nombres LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []*entity.Usuario
	for rows.Next() {
		u, err := escanearUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// ActualizarUltimoAcceso registra el momento del login sin tocar updated_at.
func (r *UsuarioRepo) ActualizarUltimoAcceso(id string, momento time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET ultimo_acceso = $2 WHERE id = $1`, id, momento)
	if err != nil {
		return fmt.Errorf("actualizar ultimo acceso: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound("USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	return nil
}

func (r *UsuarioRepo) uno(query string, args ...any) (*entity.Usuario, error) {
	u, err := escanearUsuario(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

func escanearUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Cedula, &u.Nombres, &u.Apellidos, &u.Email, &u.Telefono, &u.PasswordHash,
		&u.RolID, &u.Activo, &u.UltimoAcceso, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
