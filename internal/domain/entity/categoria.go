package entity

import "time"

// Categoria entidad de catálogo para clasificar artículos (nombre único).
type Categoria struct {
	ID          string
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}
