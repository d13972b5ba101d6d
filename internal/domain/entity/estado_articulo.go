package entity

import "time"

// EstadoArticulo catálogo de estados de inventario de un artículo
// (ej. "Disponible", "En Mantenimiento", "Dado de Baja").
type EstadoArticulo struct {
	ID          string
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}
