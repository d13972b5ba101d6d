package dto

import "time"

// SolicitarPrestamoRequest crea un préstamo en estado Pendiente.
type SolicitarPrestamoRequest struct {
	ArticuloID              string     `json:"articulo_id"`
	FechaEntregaEstimada    time.Time  `json:"fecha_entrega_estimada"`
	FechaDevolucionEstimada *time.Time `json:"fecha_devolucion_estimada"`
	Observaciones           string     `json:"observaciones"`
}

// AprobarPrestamoRequest decisión del aprobador. FechaEntregaReal opcional
// activa la vía rápida Pendiente→Entregado (entrega inmediata).
type AprobarPrestamoRequest struct {
	Aprobado         bool       `json:"aprobado"`
	NotasAprobacion  string     `json:"notas_aprobacion"`
	FechaEntregaReal *time.Time `json:"fecha_entrega_real"`
}

// EntregarPrestamoRequest registra la entrega de un préstamo ya aprobado.
type EntregarPrestamoRequest struct {
	FechaEntregaReal time.Time `json:"fecha_entrega_real"`
	Observaciones    string    `json:"observaciones"`
}

// DevolverPrestamoRequest registra la devolución de un préstamo entregado.
type DevolverPrestamoRequest struct {
	FechaDevolucionReal time.Time `json:"fecha_devolucion_real"`
	Observaciones       string    `json:"observaciones"`
}

// ListPrestamosRequest filtros de listado.
type ListPrestamosRequest struct {
	UsuarioID    string `query:"usuario_id"`
	ArticuloID   string `query:"articulo_id"`
	EstadoID     string `query:"estado_id"`
	SoloVencidos bool   `query:"vencidos"`
	PageRequest
}

// PrestamoResponse representación de un préstamo con su mora derivada.
type PrestamoResponse struct {
	ID               string `json:"id"`
	UsuarioID        string `json:"usuario_id"`
	ArticuloID       string `json:"articulo_id"`
	EstadoPrestamoID string `json:"estado_prestamo_id"`
	EstadoNombre     string `json:"estado_nombre"`

	FechaSolicitud          time.Time  `json:"fecha_solicitud"`
	FechaEntregaEstimada    time.Time  `json:"fecha_entrega_estimada"`
	FechaEntregaReal        *time.Time `json:"fecha_entrega_real,omitempty"`
	FechaDevolucionEstimada *time.Time `json:"fecha_devolucion_estimada,omitempty"`
	FechaDevolucionReal     *time.Time `json:"fecha_devolucion_real,omitempty"`

	AprobadoPor     *string    `json:"aprobado_por,omitempty"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion,omitempty"`
	NotasAprobacion string     `json:"notas_aprobacion,omitempty"`
	Observaciones   string     `json:"observaciones,omitempty"`

	Vencido     bool `json:"vencido"`
	DiasVencido int  `json:"dias_vencido"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PrestamoListResponse listado paginado.
type PrestamoListResponse struct {
	Items []PrestamoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
