package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación del puerto AuditoriaRepository sobre PostgreSQL.
// El log es append-only: solo INSERT y SELECT.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste un evento de auditoría.
func (r *AuditoriaRepo) Create(reg *entity.RegistroAuditoria) error {
	query := `
		INSERT INTO auditoria (id, usuario_id, accion, tabla, registro_id,
			valores_anteriores, valores_nuevos, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		reg.ID, reg.UsuarioID, reg.Accion, reg.Tabla, reg.RegistroID,
		reg.ValoresAnteriores, reg.ValoresNuevos, reg.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// List consulta eventos con filtros dinámicos, de más reciente a más antiguo.
func (r *AuditoriaRepo) List(f repository.FiltroAuditoria) ([]*entity.RegistroAuditoria, error) {
	ds := goqu.Dialect("postgres").
		From("auditoria").
		Select(goqu.L(`id, usuario_id, accion, tabla, registro_id,
		valores_anteriores, valores_nuevos, fecha`)).
		Prepared(true)

	if f.Tabla != "" {
		ds = ds.Where(goqu.C("tabla").Eq(f.Tabla))
	}
	if f.RegistroID != "" {
		ds = ds.Where(goqu.C("registro_id").Eq(f.RegistroID))
	}
	if f.UsuarioID != "" {
		ds = ds.Where(goqu.C("usuario_id").Eq(f.UsuarioID))
	}
	if f.Desde != nil {
		ds = ds.Where(goqu.C("fecha").Gte(*f.Desde))
	}
	if f.Hasta != nil {
		ds = ds.Where(goqu.C("fecha").Lte(*f.Hasta))
	}
	ds = ds.Order(goqu.C("fecha").Desc())
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit)).Offset(uint(f.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list auditoria: %w", err)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()

	var registros []*entity.RegistroAuditoria
	for rows.Next() {
		var reg entity.RegistroAuditoria
		err := rows.Scan(
			&reg.ID, &reg.UsuarioID, &reg.Accion, &reg.Tabla, &reg.RegistroID,
			&reg.ValoresAnteriores, &reg.ValoresNuevos, &reg.Fecha,
		)
		if err != nil {
			return nil, err
		}
		registros = append(registros, &reg)
	}
	return registros, rows.Err()
}
