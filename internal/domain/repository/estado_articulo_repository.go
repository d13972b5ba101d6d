package repository

import "github.com/almacen-pro/prestamos-api/internal/domain/entity"

// EstadoArticuloRepository puerto de persistencia para el catálogo de estados de artículo.
type EstadoArticuloRepository interface {
	Create(e *entity.EstadoArticulo) error
	GetByID(id string) (*entity.EstadoArticulo, error)
	GetByNombre(nombre string) (*entity.EstadoArticulo, error)
	Update(e *entity.EstadoArticulo) error
	List(soloActivos bool) ([]*entity.EstadoArticulo, error)
}
