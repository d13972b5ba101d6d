package repository

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
)

// UsuarioRepository puerto de persistencia para usuarios.
type UsuarioRepository interface {
	Create(u *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	GetByCedula(cedula string) (*entity.Usuario, error)
	Update(u *entity.Usuario) error
	List(soloActivos bool, limit, offset int) ([]*entity.Usuario, error)
	// ActualizarUltimoAcceso efecto explícito post-login; no toca updated_at.
	ActualizarUltimoAcceso(id string, momento time.Time) error
}
