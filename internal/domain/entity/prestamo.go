package entity

import "time"

// Prestamo registro de una camiseta prestada a un usuario, con fases de
// solicitud, aprobación, entrega y devolución. Nunca se elimina físicamente;
// su historia queda cerrada por el estado terminal (Devuelto o Rechazado).
// Las fechas "reales" son punteros: nil hasta que la fase ocurre.
type Prestamo struct {
	ID               string
	UsuarioID        string // solicitante
	ArticuloID       string
	EstadoPrestamoID string

	FechaSolicitud          time.Time
	FechaEntregaEstimada    time.Time
	FechaEntregaReal        *time.Time
	FechaDevolucionEstimada *time.Time
	FechaDevolucionReal     *time.Time

	AprobadoPor     *string // id del usuario aprobador
	FechaAprobacion *time.Time
	NotasAprobacion string

	Observaciones string // máx 500 caracteres por etapa

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone copia superficial del préstamo; se usa para capturar el "antes"
// de una transición para auditoría sin aliasing de punteros.
func (p *Prestamo) Clone() *Prestamo {
	c := *p
	c.FechaEntregaReal = clonarFecha(p.FechaEntregaReal)
	c.FechaDevolucionEstimada = clonarFecha(p.FechaDevolucionEstimada)
	c.FechaDevolucionReal = clonarFecha(p.FechaDevolucionReal)
	c.FechaAprobacion = clonarFecha(p.FechaAprobacion)
	if p.AprobadoPor != nil {
		v := *p.AprobadoPor
		c.AprobadoPor = &v
	}
	return &c
}

func clonarFecha(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
