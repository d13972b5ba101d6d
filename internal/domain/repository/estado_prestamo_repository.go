package repository

import "github.com/almacen-pro/prestamos-api/internal/domain/entity"

// EstadoPrestamoRepository puerto de persistencia para el catálogo de estados de préstamo.
type EstadoPrestamoRepository interface {
	Create(e *entity.EstadoPrestamo) error
	GetByID(id string) (*entity.EstadoPrestamo, error)
	GetByNombre(nombre string) (*entity.EstadoPrestamo, error)
	List(soloActivos bool) ([]*entity.EstadoPrestamo, error)
}
