package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdministrador = "Administrador"
	RolOperador      = "Operador"
	RolConsulta      = "Consulta"
)

// Rol entidad de catálogo de roles del sistema.
type Rol struct {
	ID          string
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}
