package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Nombre canónico del estado de artículo que habilita préstamos.
const EstadoArticuloDisponible = "Disponible"

// Articulo representa una camiseta del depósito deportivo.
// Las referencias a Categoria y EstadoArticulo son por id; nunca se cargan
// grafos de navegación desde la entidad.
type Articulo struct {
	ID               string
	Codigo           string // único, mayúsculas alfanumérico + guión, máx 20
	Nombre           string
	Descripcion      string
	Equipo           string
	Temporada        string
	Talla            string
	Color            string
	Precio           *decimal.Decimal // opcional; 0 < precio < 10000
	CategoriaID      string
	EstadoArticuloID string
	Ubicacion        string
	Stock            int // 0 <= stock < 1000, por defecto 1
	Activo           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Disponible informa si el artículo puede prestarse: estado "Disponible" y stock > 0.
// estadoNombre es el nombre del estado resuelto por el caller (la entidad solo guarda el id).
func (a *Articulo) Disponible(estadoNombre string) bool {
	return estadoNombre == EstadoArticuloDisponible && a.Stock > 0
}
