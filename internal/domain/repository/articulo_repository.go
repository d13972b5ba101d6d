package repository

import "github.com/almacen-pro/prestamos-api/internal/domain/entity"

// FiltroArticulos criterios de búsqueda para listados de artículos.
// Busqueda aplica sobre nombre y equipo (ya normalizada por el caller).
type FiltroArticulos struct {
	Busqueda    string
	CategoriaID string
	EstadoID    string
	SoloActivos bool
	Limit       int
	Offset      int
}

// ArticuloRepository puerto de persistencia para artículos.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido dentro
// de una transacción: serializa la creación de préstamos por artículo.
type ArticuloRepository interface {
	Create(a *entity.Articulo) error
	GetByID(id string) (*entity.Articulo, error)
	GetForUpdate(id string) (*entity.Articulo, error)
	GetByCodigo(codigo string) (*entity.Articulo, error)
	Update(a *entity.Articulo) error
	List(f FiltroArticulos) ([]*entity.Articulo, error)
}
