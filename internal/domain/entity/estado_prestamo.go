package entity

import "time"

// EstadoPrestamo catálogo de estados del ciclo de vida de un préstamo.
// Los nombres canónicos viven en internal/domain/prestamo (Pendiente, Aprobado,
// Entregado, Devuelto, Rechazado); esta entidad es la fila de catálogo.
type EstadoPrestamo struct {
	ID          string
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}
