package usecase

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// AuditoriaUseCase consulta del log de auditoría (solo lectura: los eventos
// los escriben las transiciones, nunca esta capa).
type AuditoriaUseCase struct {
	repo repository.AuditoriaRepository
}

// NewAuditoriaUseCase construye el caso de uso.
func NewAuditoriaUseCase(repo repository.AuditoriaRepository) *AuditoriaUseCase {
	return &AuditoriaUseCase{repo: repo}
}

// List consulta eventos de auditoría con filtros opcionales.
func (uc *AuditoriaUseCase) List(in dto.ListAuditoriaRequest) (*dto.AuditoriaListResponse, error) {
	in.DefaultPage()
	desde, err := parseFechaOpcional(in.Desde, "desde")
	if err != nil {
		return nil, err
	}
	hasta, err := parseFechaOpcional(in.Hasta, "hasta")
	if err != nil {
		return nil, err
	}
	registros, err := uc.repo.List(repository.FiltroAuditoria{
		Tabla:      in.Tabla,
		RegistroID: in.RegistroID,
		UsuarioID:  in.UsuarioID,
		Desde:      desde,
		Hasta:      hasta,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditoriaResponse, 0, len(registros))
	for _, r := range registros {
		items = append(items, dto.AuditoriaResponse{
			ID:                r.ID,
			UsuarioID:         r.UsuarioID,
			Accion:            r.Accion,
			Tabla:             r.Tabla,
			RegistroID:        r.RegistroID,
			ValoresAnteriores: r.ValoresAnteriores,
			ValoresNuevos:     r.ValoresNuevos,
			Fecha:             r.Fecha,
		})
	}
	return &dto.AuditoriaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// parseFechaOpcional interpreta un filtro de fecha RFC 3339; vacío es nil.
func parseFechaOpcional(valor, campo string) (*time.Time, error) {
	if valor == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, valor)
	if err != nil {
		return nil, domain.NewValidation("FECHA_INVALIDA", "la fecha debe ser RFC 3339").
			WithDetail("campo", campo)
	}
	return &t, nil
}
