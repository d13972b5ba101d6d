package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateArticuloRequest alta de una camiseta.
type CreateArticuloRequest struct {
	Codigo           string           `json:"codigo"`
	Nombre           string           `json:"nombre"`
	Descripcion      string           `json:"descripcion"`
	Equipo           string           `json:"equipo"`
	Temporada        string           `json:"temporada"`
	Talla            string           `json:"talla"`
	Color            string           `json:"color"`
	Precio           *decimal.Decimal `json:"precio"`
	CategoriaID      string           `json:"categoria_id"`
	EstadoArticuloID string           `json:"estado_articulo_id"`
	Ubicacion        string           `json:"ubicacion"`
	Stock            *int             `json:"stock"` // nil = por defecto 1
}

// UpdateArticuloRequest actualización parcial (campos nil no se tocan).
type UpdateArticuloRequest struct {
	Nombre           *string          `json:"nombre"`
	Descripcion      *string          `json:"descripcion"`
	Equipo           *string          `json:"equipo"`
	Temporada        *string          `json:"temporada"`
	Talla            *string          `json:"talla"`
	Color            *string          `json:"color"`
	Precio           *decimal.Decimal `json:"precio"`
	CategoriaID      *string          `json:"categoria_id"`
	EstadoArticuloID *string          `json:"estado_articulo_id"`
	Ubicacion        *string          `json:"ubicacion"`
	Stock            *int             `json:"stock"`
}

// ArticuloResponse representación de un artículo con su disponibilidad derivada.
type ArticuloResponse struct {
	ID               string           `json:"id"`
	Codigo           string           `json:"codigo"`
	Nombre           string           `json:"nombre"`
	Descripcion      string           `json:"descripcion,omitempty"`
	Equipo           string           `json:"equipo"`
	Temporada        string           `json:"temporada,omitempty"`
	Talla            string           `json:"talla,omitempty"`
	Color            string           `json:"color,omitempty"`
	Precio           *decimal.Decimal `json:"precio,omitempty"`
	CategoriaID      string           `json:"categoria_id"`
	EstadoArticuloID string           `json:"estado_articulo_id"`
	EstadoNombre     string           `json:"estado_nombre,omitempty"`
	Ubicacion        string           `json:"ubicacion,omitempty"`
	Stock            int              `json:"stock"`
	Activo           bool             `json:"activo"`
	Disponible       bool             `json:"disponible"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ArticuloListResponse listado paginado.
type ArticuloListResponse struct {
	Items []ArticuloResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
