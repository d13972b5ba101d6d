package repository

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
)

// FiltroAuditoria criterios para consultar el log de auditoría.
type FiltroAuditoria struct {
	Tabla      string
	RegistroID string
	UsuarioID  string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// AuditoriaRepository puerto de persistencia del log de auditoría.
// Create es fire-and-forget desde el punto de vista del negocio: un fallo al
// auditar no debe revertir la transición auditada.
type AuditoriaRepository interface {
	Create(r *entity.RegistroAuditoria) error
	List(f FiltroAuditoria) ([]*entity.RegistroAuditoria, error)
}
