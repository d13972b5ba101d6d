package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en auditoría.
const (
	AccionCrear      = "CREAR"
	AccionActualizar = "ACTUALIZAR"
	AccionAprobar    = "APROBAR"
	AccionRechazar   = "RECHAZAR"
	AccionEntregar   = "ENTREGAR"
	AccionDevolver   = "DEVOLVER"
	AccionDesactivar = "DESACTIVAR"
)

// RegistroAuditoria evento de auditoría: quién hizo qué sobre qué fila,
// con snapshots JSON del antes y el después.
type RegistroAuditoria struct {
	ID                string
	UsuarioID         string
	Accion            string
	Tabla             string
	RegistroID        string
	ValoresAnteriores json.RawMessage
	ValoresNuevos     json.RawMessage
	Fecha             time.Time
}
