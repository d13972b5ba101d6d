package dto

import "time"

// ReportePrestamosRequest filtros del reporte de préstamos.
type ReportePrestamosRequest struct {
	UsuarioID    string `query:"usuario_id"`
	ArticuloID   string `query:"articulo_id"`
	EstadoID     string `query:"estado_id"`
	SoloVencidos bool   `query:"vencidos"`
	Desde        string `query:"desde"` // RFC 3339, sobre fecha de solicitud
	Hasta        string `query:"hasta"`
	PageRequest
}

// FilaReporteResponse fila desnormalizada del reporte.
type FilaReporteResponse struct {
	PrestamoID              string     `json:"prestamo_id"`
	EstadoNombre            string     `json:"estado_nombre"`
	UsuarioNombre           string     `json:"usuario_nombre"`
	ArticuloCodigo          string     `json:"articulo_codigo"`
	ArticuloNombre          string     `json:"articulo_nombre"`
	FechaSolicitud          time.Time  `json:"fecha_solicitud"`
	FechaEntregaEstimada    time.Time  `json:"fecha_entrega_estimada"`
	FechaDevolucionEstimada *time.Time `json:"fecha_devolucion_estimada,omitempty"`
	FechaDevolucionReal     *time.Time `json:"fecha_devolucion_real,omitempty"`
	Vencido                 bool       `json:"vencido"`
	DiasVencido             int        `json:"dias_vencido"`
}

// ResumenReporteResponse totales del reporte.
type ResumenReporteResponse struct {
	Total     int `json:"total"`
	Activos   int `json:"activos"`
	Vencidos  int `json:"vencidos"`
	Devueltos int `json:"devueltos"`
}

// ReportePrestamosResponse reporte completo: filas + resumen.
type ReportePrestamosResponse struct {
	Filas   []FilaReporteResponse  `json:"filas"`
	Resumen ResumenReporteResponse `json:"resumen"`
	Page    PageResponse           `json:"page"`
}
