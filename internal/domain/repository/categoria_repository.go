package repository

import "github.com/almacen-pro/prestamos-api/internal/domain/entity"

// CategoriaRepository puerto de persistencia para categorías.
type CategoriaRepository interface {
	Create(c *entity.Categoria) error
	GetByID(id string) (*entity.Categoria, error)
	GetByNombre(nombre string) (*entity.Categoria, error)
	Update(c *entity.Categoria) error
	List(soloActivas bool) ([]*entity.Categoria, error)
}
