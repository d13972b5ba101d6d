package dto

import "time"

// CreateCatalogoRequest alta de una entidad de catálogo
// (categoría, estado de artículo o estado de préstamo).
type CreateCatalogoRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// UpdateCatalogoRequest actualización parcial de una entidad de catálogo.
type UpdateCatalogoRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activo      *bool   `json:"activo"`
}

// CatalogoResponse representación común de las entidades de catálogo.
type CatalogoResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}
