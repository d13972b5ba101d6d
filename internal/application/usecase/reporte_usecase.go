package usecase

import (
	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	domprestamo "github.com/almacen-pro/prestamos-api/internal/domain/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// ReporteUseCase reporte desnormalizado de préstamos con resumen de totales.
// La mora se calcula al momento de la consulta, nunca se lee de la base.
type ReporteUseCase struct {
	prestamos repository.PrestamoRepository
	clock     domprestamo.Clock
}

// NewReporteUseCase construye el caso de uso.
func NewReporteUseCase(prestamos repository.PrestamoRepository, clock domprestamo.Clock) *ReporteUseCase {
	return &ReporteUseCase{prestamos: prestamos, clock: clock}
}

// Prestamos genera el reporte de préstamos con filtros y resumen.
func (uc *ReporteUseCase) Prestamos(in dto.ReportePrestamosRequest) (*dto.ReportePrestamosResponse, error) {
	in.DefaultPage()
	desde, err := parseFechaOpcional(in.Desde, "desde")
	if err != nil {
		return nil, err
	}
	hasta, err := parseFechaOpcional(in.Hasta, "hasta")
	if err != nil {
		return nil, err
	}
	ahora := uc.clock.Now()
	filas, err := uc.prestamos.ListReporte(repository.FiltroPrestamos{
		UsuarioID:    in.UsuarioID,
		ArticuloID:   in.ArticuloID,
		EstadoID:     in.EstadoID,
		Desde:        desde,
		Hasta:        hasta,
		SoloVencidos: in.SoloVencidos,
		Ahora:        ahora,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ReportePrestamosResponse{
		Filas: make([]dto.FilaReporteResponse, 0, len(filas)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, f := range filas {
		p := f.Prestamo
		vencido, dias := domprestamo.Vencimiento(p.FechaDevolucionEstimada, p.FechaDevolucionReal, ahora)
		resp.Filas = append(resp.Filas, dto.FilaReporteResponse{
			PrestamoID:              p.ID,
			EstadoNombre:            f.EstadoNombre,
			UsuarioNombre:           f.UsuarioNombre,
			ArticuloCodigo:          f.ArticuloCodigo,
			ArticuloNombre:          f.ArticuloNombre,
			FechaSolicitud:          p.FechaSolicitud,
			FechaEntregaEstimada:    p.FechaEntregaEstimada,
			FechaDevolucionEstimada: p.FechaDevolucionEstimada,
			FechaDevolucionReal:     p.FechaDevolucionReal,
			Vencido:                 vencido,
			DiasVencido:             dias,
		})
		resp.Resumen.Total++
		if domprestamo.EsActivo(f.EstadoNombre) {
			resp.Resumen.Activos++
		}
		if vencido {
			resp.Resumen.Vencidos++
		}
		if f.EstadoNombre == domprestamo.EstadoDevuelto {
			resp.Resumen.Devueltos++
		}
	}
	return resp, nil
}
