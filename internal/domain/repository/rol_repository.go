package repository

import "github.com/almacen-pro/prestamos-api/internal/domain/entity"

// RolRepository puerto de persistencia para roles.
// Create lo usa cmd/seed; los roles no se escriben vía API.
type RolRepository interface {
	Create(r *entity.Rol) error
	GetByID(id string) (*entity.Rol, error)
	GetByNombre(nombre string) (*entity.Rol, error)
	List() ([]*entity.Rol, error)
}
