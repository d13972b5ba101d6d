package repository

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
)

// FiltroPrestamos criterios para listados y reportes de préstamos.
// SoloVencidos filtra préstamos con devolución estimada vencida y sin
// devolución real (la referencia "ahora" la aporta el caller en Ahora).
type FiltroPrestamos struct {
	UsuarioID    string
	ArticuloID   string
	EstadoID     string
	Desde        *time.Time // sobre fecha_solicitud
	Hasta        *time.Time
	SoloVencidos bool
	Ahora        time.Time
	Limit        int
	Offset       int
}

// FilaReportePrestamo fila desnormalizada para el reporte de préstamos
// (nombres resueltos por JOIN, no navegación de objetos).
type FilaReportePrestamo struct {
	Prestamo       entity.Prestamo
	EstadoNombre   string
	UsuarioNombre  string
	ArticuloCodigo string
	ArticuloNombre string
}

// PrestamoRepository puerto de persistencia para préstamos.
// ListActivosPorArticulo debe ejecutarse dentro de la transacción de la
// solicitud (bloquea las filas activas) para que el chequeo de unicidad y el
// insert sean atómicos frente a solicitudes concurrentes.
type PrestamoRepository interface {
	Create(p *entity.Prestamo) error
	GetByID(id string) (*entity.Prestamo, error)
	Update(p *entity.Prestamo) error
	ListActivosPorArticulo(articuloID string, estadosActivos []string) ([]*entity.Prestamo, error)
	List(f FiltroPrestamos) ([]*entity.Prestamo, error)
	ListReporte(f FiltroPrestamos) ([]*FilaReportePrestamo, error)
}
