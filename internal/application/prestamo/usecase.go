package prestamo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	domprestamo "github.com/almacen-pro/prestamos-api/internal/domain/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

const tablaPrestamos = "prestamos"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PrestamoUseCase orquesta el ciclo de vida del préstamo: solicitud,
// aprobación/rechazo, entrega y devolución. Las reglas puras viven en
// internal/domain/prestamo; aquí se resuelven referencias, se delimita la
// transacción y se emite auditoría post-commit.
type PrestamoUseCase struct {
	txRunner     TxRunner
	prestamoRepo repository.PrestamoRepository
	articuloRepo repository.ArticuloRepository
	usuarioRepo  repository.UsuarioRepository
	estadoRepo   repository.EstadoPrestamoRepository
	auditoria    repository.AuditoriaRepository
	clock        domprestamo.Clock
	log          *logger.Logger
}

// NewPrestamoUseCase construye el caso de uso.
func NewPrestamoUseCase(
	txRunner TxRunner,
	prestamoRepo repository.PrestamoRepository,
	articuloRepo repository.ArticuloRepository,
	usuarioRepo repository.UsuarioRepository,
	estadoRepo repository.EstadoPrestamoRepository,
	auditoria repository.AuditoriaRepository,
	clock domprestamo.Clock,
	log *logger.Logger,
) *PrestamoUseCase {
	return &PrestamoUseCase{
		txRunner:     txRunner,
		prestamoRepo: prestamoRepo,
		articuloRepo: articuloRepo,
		usuarioRepo:  usuarioRepo,
		estadoRepo:   estadoRepo,
		auditoria:    auditoria,
		clock:        clock,
		log:          log,
	}
}

// Solicitar crea un préstamo en estado Pendiente para usuarioID.
// El chequeo de unicidad (un préstamo activo por artículo, y ninguno previo
// del mismo usuario sobre ese artículo) se hace dentro de la transacción,
// con la fila del artículo bloqueada, para que dos solicitudes concurrentes
// no puedan colarse ambas.
func (uc *PrestamoUseCase) Solicitar(ctx context.Context, usuarioID string, in dto.SolicitarPrestamoRequest) (*dto.PrestamoResponse, error) {
	now := uc.clock.Now()

	if err := domprestamo.ValidarSolicitud(in.FechaEntregaEstimada, in.FechaDevolucionEstimada, now); err != nil {
		return nil, err
	}
	if err := domprestamo.ValidarObservaciones(in.Observaciones); err != nil {
		return nil, err
	}

	usuario, err := uc.usuarioRepo.GetByID(usuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Activo {
		return nil, domain.NewNotFound("USUARIO_NO_ENCONTRADO", "usuario no encontrado o inactivo")
	}

	estados, err := uc.estadosPorNombre()
	if err != nil {
		return nil, err
	}
	estadoPendiente, ok := estados[domprestamo.EstadoPendiente]
	if !ok {
		return nil, fmt.Errorf("catálogo de estados incompleto: falta %q", domprestamo.EstadoPendiente)
	}

	var creado *entity.Prestamo
	err = uc.txRunner.Run(ctx, func(pr repository.PrestamoRepository, ar repository.ArticuloRepository) error {
		articulo, err := ar.GetForUpdate(in.ArticuloID)
		if err != nil {
			return err
		}
		if articulo == nil {
			return domain.NewNotFound("ARTICULO_NO_ENCONTRADO", "artículo no encontrado")
		}
		if !articulo.Activo {
			return domain.NewValidation("ARTICULO_INACTIVO", "el artículo no está activo")
		}

		activos, err := pr.ListActivosPorArticulo(in.ArticuloID, domprestamo.EstadosActivos())
		if err != nil {
			return err
		}
		for _, a := range activos {
			if a.UsuarioID == usuarioID {
				return domain.NewConflict("PRESTAMO_DUPLICADO",
					"el usuario ya tiene un préstamo activo de este artículo").
					WithDetail("prestamo_id", a.ID)
			}
		}
		if len(activos) > 0 {
			return domain.NewConflict("ARTICULO_PRESTADO",
				"el artículo ya tiene un préstamo activo").
				WithDetail("prestamo_id", activos[0].ID)
		}

		p := &entity.Prestamo{
			ID:                      uuid.New().String(),
			UsuarioID:               usuarioID,
			ArticuloID:              in.ArticuloID,
			EstadoPrestamoID:        estadoPendiente.ID,
			FechaSolicitud:          now,
			FechaEntregaEstimada:    in.FechaEntregaEstimada,
			FechaDevolucionEstimada: in.FechaDevolucionEstimada,
			Observaciones:           in.Observaciones,
			CreatedAt:               now,
			UpdatedAt:               now,
		}
		if err := pr.Create(p); err != nil {
			return err
		}
		creado = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditar(usuarioID, entity.AccionCrear, creado.ID, nil, creado)
	return uc.aResponse(creado, domprestamo.EstadoPendiente, now), nil
}

// AprobarORechazar resuelve un préstamo Pendiente. Con aprobado=true pasa a
// Aprobado, o directamente a Entregado si viene fecha de entrega real (entrega
// inmediata en la misma ventanilla). Con aprobado=false pasa a Rechazado,
// estado terminal. Siempre registra aprobador, momento y notas.
func (uc *PrestamoUseCase) AprobarORechazar(ctx context.Context, prestamoID, aprobadorID string, in dto.AprobarPrestamoRequest) (*dto.PrestamoResponse, error) {
	now := uc.clock.Now()

	if err := domprestamo.ValidarObservaciones(in.NotasAprobacion); err != nil {
		return nil, err
	}
	aprobador, err := uc.usuarioRepo.GetByID(aprobadorID)
	if err != nil {
		return nil, err
	}
	if aprobador == nil || !aprobador.Activo {
		return nil, domain.NewNotFound("APROBADOR_NO_ENCONTRADO", "aprobador no encontrado o inactivo")
	}

	destino := domprestamo.EstadoRechazado
	accion := entity.AccionRechazar
	if in.Aprobado {
		destino = domprestamo.EstadoAprobado
		accion = entity.AccionAprobar
		if in.FechaEntregaReal != nil {
			destino = domprestamo.EstadoEntregado
			accion = entity.AccionEntregar
		}
	}

	return uc.transicionar(ctx, prestamoID, aprobadorID, destino, accion, now,
		func(p *entity.Prestamo, estadoActual string) error {
			// Al rechazar no se valida la fecha de entrega: no aplica.
			var entregaReal *time.Time
			if in.Aprobado {
				entregaReal = in.FechaEntregaReal
			}
			if err := domprestamo.ValidarAprobacion(estadoActual, entregaReal, now); err != nil {
				return err
			}
			p.AprobadoPor = &aprobadorID
			p.FechaAprobacion = &now
			p.NotasAprobacion = in.NotasAprobacion
			if in.Aprobado && in.FechaEntregaReal != nil {
				p.FechaEntregaReal = in.FechaEntregaReal
			}
			return nil
		})
}

// Entregar registra la entrega física de un préstamo ya Aprobado.
func (uc *PrestamoUseCase) Entregar(ctx context.Context, prestamoID, actorID string, in dto.EntregarPrestamoRequest) (*dto.PrestamoResponse, error) {
	now := uc.clock.Now()

	if err := domprestamo.ValidarObservaciones(in.Observaciones); err != nil {
		return nil, err
	}

	return uc.transicionar(ctx, prestamoID, actorID, domprestamo.EstadoEntregado, entity.AccionEntregar, now,
		func(p *entity.Prestamo, estadoActual string) error {
			if err := domprestamo.ValidarEntrega(estadoActual, in.FechaEntregaReal, now); err != nil {
				return err
			}
			p.FechaEntregaReal = &in.FechaEntregaReal
			p.Observaciones = anexarObservaciones(p.Observaciones, in.Observaciones)
			return nil
		})
}

// Devolver cierra un préstamo Entregado: estado Devuelto + fecha real de
// devolución. Desde ese momento la mora queda permanentemente en falso.
func (uc *PrestamoUseCase) Devolver(ctx context.Context, prestamoID, actorID string, in dto.DevolverPrestamoRequest) (*dto.PrestamoResponse, error) {
	now := uc.clock.Now()

	if err := domprestamo.ValidarObservaciones(in.Observaciones); err != nil {
		return nil, err
	}

	return uc.transicionar(ctx, prestamoID, actorID, domprestamo.EstadoDevuelto, entity.AccionDevolver, now,
		func(p *entity.Prestamo, estadoActual string) error {
			if err := domprestamo.ValidarDevolucion(estadoActual, in.FechaDevolucionReal, now); err != nil {
				return err
			}
			p.FechaDevolucionReal = &in.FechaDevolucionReal
			p.Observaciones = anexarObservaciones(p.Observaciones, in.Observaciones)
			return nil
		})
}

// transicionar carga el préstamo dentro de la transacción, aplica mutar (que
// valida la precondición de estado), cambia el estado al destino y persiste.
// Si algo falla, la transacción se revierte y el préstamo queda intacto.
func (uc *PrestamoUseCase) transicionar(
	ctx context.Context,
	prestamoID, actorID, destino, accion string,
	now time.Time,
	mutar func(p *entity.Prestamo, estadoActual string) error,
) (*dto.PrestamoResponse, error) {
	estadosPorID, estadosPorNombre, err := uc.estados()
	if err != nil {
		return nil, err
	}
	estadoDestino, ok := estadosPorNombre[destino]
	if !ok {
		return nil, fmt.Errorf("catálogo de estados incompleto: falta %q", destino)
	}

	var antes, despues *entity.Prestamo
	err = uc.txRunner.Run(ctx, func(pr repository.PrestamoRepository, _ repository.ArticuloRepository) error {
		p, err := pr.GetByID(prestamoID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NewNotFound("PRESTAMO_NO_ENCONTRADO", "préstamo no encontrado")
		}
		estadoActual := estadosPorID[p.EstadoPrestamoID]

		antes = p.Clone()
		if err := mutar(p, estadoActual); err != nil {
			return err
		}
		if !domprestamo.PuedeTransicionar(estadoActual, destino) {
			return domain.NewConflict("TRANSICION_ILEGAL",
				"transición de estado no permitida").
				WithDetail("desde", estadoActual).
				WithDetail("hacia", destino)
		}
		p.EstadoPrestamoID = estadoDestino.ID
		p.UpdatedAt = now

		if err := domprestamo.ValidarCoherencia(destino, p.FechaEntregaReal, p.FechaDevolucionReal); err != nil {
			return err
		}
		if err := pr.Update(p); err != nil {
			return err
		}
		despues = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditar(actorID, accion, despues.ID, antes, despues)
	return uc.aResponse(despues, destino, now), nil
}

// GetByID devuelve un préstamo con su mora calculada al momento de la consulta.
func (uc *PrestamoUseCase) GetByID(id string) (*dto.PrestamoResponse, error) {
	p, err := uc.prestamoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	estadosPorID, _, err := uc.estados()
	if err != nil {
		return nil, err
	}
	return uc.aResponse(p, estadosPorID[p.EstadoPrestamoID], uc.clock.Now()), nil
}

// List lista préstamos con filtros y paginación.
func (uc *PrestamoUseCase) List(in dto.ListPrestamosRequest) (*dto.PrestamoListResponse, error) {
	in.DefaultPage()
	now := uc.clock.Now()
	lista, err := uc.prestamoRepo.List(repository.FiltroPrestamos{
		UsuarioID:    in.UsuarioID,
		ArticuloID:   in.ArticuloID,
		EstadoID:     in.EstadoID,
		SoloVencidos: in.SoloVencidos,
		Ahora:        now,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	estadosPorID, _, err := uc.estados()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrestamoResponse, 0, len(lista))
	for _, p := range lista {
		items = append(items, *uc.aResponse(p, estadosPorID[p.EstadoPrestamoID], now))
	}
	return &dto.PrestamoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// estados carga el catálogo completo y lo indexa por id y por nombre.
func (uc *PrestamoUseCase) estados() (porID map[string]string, porNombre map[string]*entity.EstadoPrestamo, err error) {
	lista, err := uc.estadoRepo.List(false)
	if err != nil {
		return nil, nil, err
	}
	porID = make(map[string]string, len(lista))
	porNombre = make(map[string]*entity.EstadoPrestamo, len(lista))
	for _, e := range lista {
		porID[e.ID] = e.Nombre
		porNombre[e.Nombre] = e
	}
	return porID, porNombre, nil
}

func (uc *PrestamoUseCase) estadosPorNombre() (map[string]*entity.EstadoPrestamo, error) {
	_, porNombre, err := uc.estados()
	return porNombre, err
}

// auditar emite el registro de auditoría post-commit. Fire-and-forget: un
// fallo al auditar se loguea y no afecta la transición ya confirmada.
func (uc *PrestamoUseCase) auditar(actorID, accion, registroID string, antes, despues *entity.Prestamo) {
	reg := &entity.RegistroAuditoria{
		ID:         uuid.New().String(),
		UsuarioID:  actorID,
		Accion:     accion,
		Tabla:      tablaPrestamos,
		RegistroID: registroID,
		Fecha:      uc.clock.Now(),
	}
	if antes != nil {
		if b, err := json.Marshal(antes); err == nil {
			reg.ValoresAnteriores = b
		}
	}
	if despues != nil {
		if b, err := json.Marshal(despues); err == nil {
			reg.ValoresNuevos = b
		}
	}
	if err := uc.auditoria.Create(reg); err != nil {
		uc.log.Warn().Err(err).
			Str("accion", accion).
			Str("registro_id", registroID).
			Msg("no se pudo registrar auditoría")
	}
}

func (uc *PrestamoUseCase) aResponse(p *entity.Prestamo, estadoNombre string, now time.Time) *dto.PrestamoResponse {
	vencido, dias := domprestamo.Vencimiento(p.FechaDevolucionEstimada, p.FechaDevolucionReal, now)
	return &dto.PrestamoResponse{
		ID:                      p.ID,
		UsuarioID:               p.UsuarioID,
		ArticuloID:              p.ArticuloID,
		EstadoPrestamoID:        p.EstadoPrestamoID,
		EstadoNombre:            estadoNombre,
		FechaSolicitud:          p.FechaSolicitud,
		FechaEntregaEstimada:    p.FechaEntregaEstimada,
		FechaEntregaReal:        p.FechaEntregaReal,
		FechaDevolucionEstimada: p.FechaDevolucionEstimada,
		FechaDevolucionReal:     p.FechaDevolucionReal,
		AprobadoPor:             p.AprobadoPor,
		FechaAprobacion:         p.FechaAprobacion,
		NotasAprobacion:         p.NotasAprobacion,
		Observaciones:           p.Observaciones,
		Vencido:                 vencido,
		DiasVencido:             dias,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func anexarObservaciones(previas, nuevas string) string {
	if nuevas == "" {
		return previas
	}
	if previas == "" {
		return nuevas
	}
	return previas + "\n" + nuevas
}
