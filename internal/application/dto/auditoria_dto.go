package dto

import (
	"encoding/json"
	"time"
)

// ListAuditoriaRequest filtros de consulta del log de auditoría.
type ListAuditoriaRequest struct {
	Tabla      string `query:"tabla"`
	RegistroID string `query:"registro_id"`
	UsuarioID  string `query:"usuario_id"`
	Desde      string `query:"desde"` // RFC 3339
	Hasta      string `query:"hasta"`
	PageRequest
}

// AuditoriaResponse un evento de auditoría.
type AuditoriaResponse struct {
	ID                string          `json:"id"`
	UsuarioID         string          `json:"usuario_id"`
	Accion            string          `json:"accion"`
	Tabla             string          `json:"tabla"`
	RegistroID        string          `json:"registro_id"`
	ValoresAnteriores json.RawMessage `json:"valores_anteriores,omitempty"`
	ValoresNuevos     json.RawMessage `json:"valores_nuevos,omitempty"`
	Fecha             time.Time       `json:"fecha"`
}

// AuditoriaListResponse listado paginado.
type AuditoriaListResponse struct {
	Items []AuditoriaResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
