package prestamo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	appprestamo "github.com/almacen-pro/prestamos-api/internal/application/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	domprestamo "github.com/almacen-pro/prestamos-api/internal/domain/prestamo"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. GetByID devuelve clones y Update persiste clones, de modo
// que una transacción fallida deja el "almacén" intacto (semántica rollback).
// ──────────────────────────────────────────────────────────────────────────────

type relojFijo struct{ t time.Time }

func (r *relojFijo) Now() time.Time { return r.t }

type fakePrestamoRepo struct {
	porID        map[string]*entity.Prestamo
	nombrePorEst map[string]string // estado id → nombre, para filtrar activos
}

func (f *fakePrestamoRepo) Create(p *entity.Prestamo) error {
	f.porID[p.ID] = p.Clone()
	return nil
}

func (f *fakePrestamoRepo) GetByID(id string) (*entity.Prestamo, error) {
	p, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (f *fakePrestamoRepo) Update(p *entity.Prestamo) error {
	f.porID[p.ID] = p.Clone()
	return nil
}

func (f *fakePrestamoRepo) ListActivosPorArticulo(articuloID string, estadosActivos []string) ([]*entity.Prestamo, error) {
	var out []*entity.Prestamo
	for _, p := range f.porID {
		if p.ArticuloID != articuloID {
			continue
		}
		nombre := f.nombrePorEst[p.EstadoPrestamoID]
		for _, activo := range estadosActivos {
			if nombre == activo {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out, nil
}

func (f *fakePrestamoRepo) List(repository.FiltroPrestamos) ([]*entity.Prestamo, error) {
	return nil, nil
}

func (f *fakePrestamoRepo) ListReporte(repository.FiltroPrestamos) ([]*repository.FilaReportePrestamo, error) {
	return nil, nil
}

type fakeArticuloRepo struct{ porID map[string]*entity.Articulo }

func (f *fakeArticuloRepo) Create(a *entity.Articulo) error { f.porID[a.ID] = a; return nil }
func (f *fakeArticuloRepo) GetByID(id string) (*entity.Articulo, error) {
	a, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *a
	return &copia, nil
}
func (f *fakeArticuloRepo) GetForUpdate(id string) (*entity.Articulo, error) { return f.GetByID(id) }
func (f *fakeArticuloRepo) GetByCodigo(string) (*entity.Articulo, error)     { return nil, nil }
func (f *fakeArticuloRepo) Update(a *entity.Articulo) error                  { f.porID[a.ID] = a; return nil }
func (f *fakeArticuloRepo) List(repository.FiltroArticulos) ([]*entity.Articulo, error) {
	return nil, nil
}

type fakeUsuarioRepo struct{ porID map[string]*entity.Usuario }

func (f *fakeUsuarioRepo) Create(u *entity.Usuario) error { f.porID[u.ID] = u; return nil }
func (f *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, ok := f.porID[id]
	if !ok {
		return nil, nil
	}
	copia := *u
	return &copia, nil
}
func (f *fakeUsuarioRepo) GetByEmail(string) (*entity.Usuario, error)  { return nil, nil }
func (f *fakeUsuarioRepo) GetByCedula(string) (*entity.Usuario, error) { return nil, nil }
func (f *fakeUsuarioRepo) Update(u *entity.Usuario) error              { f.porID[u.ID] = u; return nil }
func (f *fakeUsuarioRepo) List(bool, int, int) ([]*entity.Usuario, error) {
	return nil, nil
}
func (f *fakeUsuarioRepo) ActualizarUltimoAcceso(string, time.Time) error { return nil }

type fakeEstadoRepo struct{ lista []*entity.EstadoPrestamo }

func (f *fakeEstadoRepo) Create(*entity.EstadoPrestamo) error { return nil }
func (f *fakeEstadoRepo) GetByID(id string) (*entity.EstadoPrestamo, error) {
	for _, e := range f.lista {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (f *fakeEstadoRepo) GetByNombre(nombre string) (*entity.EstadoPrestamo, error) {
	for _, e := range f.lista {
		if e.Nombre == nombre {
			return e, nil
		}
	}
	return nil, nil
}
func (f *fakeEstadoRepo) List(bool) ([]*entity.EstadoPrestamo, error) { return f.lista, nil }

type fakeAuditoriaRepo struct{ registros []*entity.RegistroAuditoria }

func (f *fakeAuditoriaRepo) Create(r *entity.RegistroAuditoria) error {
	f.registros = append(f.registros, r)
	return nil
}
func (f *fakeAuditoriaRepo) List(repository.FiltroAuditoria) ([]*entity.RegistroAuditoria, error) {
	return f.registros, nil
}

// fakeTxRunner ejecuta el callback directamente con los repos en memoria.
type fakeTxRunner struct {
	pr repository.PrestamoRepository
	ar repository.ArticuloRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	repository.PrestamoRepository, repository.ArticuloRepository) error) error {
	return fn(f.pr, f.ar)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	idSolicitante = "usuario-1"
	idOtroUsuario = "usuario-2"
	idAprobador   = "usuario-7"
	idArticulo    = "articulo-1"
)

var inicio = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

type entorno struct {
	uc        *appprestamo.PrestamoUseCase
	prestamos *fakePrestamoRepo
	auditoria *fakeAuditoriaRepo
	reloj     *relojFijo
}

func nuevoEntorno(t *testing.T) *entorno {
	t.Helper()

	estados := []*entity.EstadoPrestamo{
		{ID: "est-pendiente", Nombre: domprestamo.EstadoPendiente, Activo: true},
		{ID: "est-aprobado", Nombre: domprestamo.EstadoAprobado, Activo: true},
		{ID: "est-entregado", Nombre: domprestamo.EstadoEntregado, Activo: true},
		{ID: "est-devuelto", Nombre: domprestamo.EstadoDevuelto, Activo: true},
		{ID: "est-rechazado", Nombre: domprestamo.EstadoRechazado, Activo: true},
	}
	nombrePorEst := make(map[string]string, len(estados))
	for _, e := range estados {
		nombrePorEst[e.ID] = e.Nombre
	}

	prestamos := &fakePrestamoRepo{porID: map[string]*entity.Prestamo{}, nombrePorEst: nombrePorEst}
	articulos := &fakeArticuloRepo{porID: map[string]*entity.Articulo{
		idArticulo: {ID: idArticulo, Codigo: "CAM-BARCA-01", Nombre: "Camiseta titular", Stock: 1, Activo: true},
	}}
	usuarios := &fakeUsuarioRepo{porID: map[string]*entity.Usuario{
		idSolicitante: {ID: idSolicitante, Nombres: "Ana", Activo: true},
		idOtroUsuario: {ID: idOtroUsuario, Nombres: "Luis", Activo: true},
		idAprobador:   {ID: idAprobador, Nombres: "Marta", Activo: true},
	}}
	auditoria := &fakeAuditoriaRepo{}
	reloj := &relojFijo{t: inicio}

	uc := appprestamo.NewPrestamoUseCase(
		&fakeTxRunner{pr: prestamos, ar: articulos},
		prestamos, articulos, usuarios, &fakeEstadoRepo{lista: estados}, auditoria,
		reloj,
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return &entorno{uc: uc, prestamos: prestamos, auditoria: auditoria, reloj: reloj}
}

func (e *entorno) solicitar(t *testing.T, usuarioID string, dias int, devolucionEnDias *int) *dto.PrestamoResponse {
	t.Helper()
	in := dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, dias),
	}
	if devolucionEnDias != nil {
		f := inicio.AddDate(0, 0, *devolucionEnDias)
		in.FechaDevolucionEstimada = &f
	}
	resp, err := e.uc.Solicitar(context.Background(), usuarioID, in)
	require.NoError(t, err)
	return resp
}

func intPtr(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Solicitud
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: solicitud con entrega estimada hoy+5 y sin devolución estimada.
func TestSolicitar_CreaPendienteSinMora(t *testing.T) {
	e := nuevoEntorno(t)

	resp := e.solicitar(t, idSolicitante, 5, nil)

	assert.Equal(t, domprestamo.EstadoPendiente, resp.EstadoNombre)
	assert.Equal(t, idSolicitante, resp.UsuarioID)
	assert.Equal(t, inicio, resp.FechaSolicitud)
	assert.False(t, resp.Vencido, "un préstamo recién solicitado nunca está vencido")
	assert.Zero(t, resp.DiasVencido)
}

func TestSolicitar_ArticuloConPrestamoActivo_Conflicto(t *testing.T) {
	e := nuevoEntorno(t)
	e.solicitar(t, idSolicitante, 5, nil)

	_, err := e.uc.Solicitar(context.Background(), idOtroUsuario, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "ARTICULO_PRESTADO", domain.AsError(err).Code)
}

func TestSolicitar_MismoUsuarioMismoArticulo_Conflicto(t *testing.T) {
	e := nuevoEntorno(t)
	e.solicitar(t, idSolicitante, 5, nil)

	_, err := e.uc.Solicitar(context.Background(), idSolicitante, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	require.Error(t, err)
	assert.Equal(t, "PRESTAMO_DUPLICADO", domain.AsError(err).Code)
}

func TestSolicitar_ArticuloInexistente_NotFound(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.uc.Solicitar(context.Background(), idSolicitante, dto.SolicitarPrestamoRequest{
		ArticuloID:           "no-existe",
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSolicitar_UsuarioInexistente_NotFound(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.uc.Solicitar(context.Background(), "fantasma", dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSolicitar_FechasInvalidas_Validation(t *testing.T) {
	e := nuevoEntorno(t)

	_, err := e.uc.Solicitar(context.Background(), idSolicitante, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio, // hoy: no estrictamente posterior
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aprobación / rechazo
// ──────────────────────────────────────────────────────────────────────────────

// Escenario B: aprobación con entrega inmediata registra aprobador y pasa a Entregado.
func TestAprobar_ConEntregaInmediata_PasaAEntregado(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	hoy := inicio
	resp, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado:         true,
		FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)

	assert.Equal(t, domprestamo.EstadoEntregado, resp.EstadoNombre)
	require.NotNil(t, resp.AprobadoPor)
	assert.Equal(t, idAprobador, *resp.AprobadoPor)
	require.NotNil(t, resp.FechaEntregaReal)
	assert.Equal(t, hoy, *resp.FechaEntregaReal)
	require.NotNil(t, resp.FechaAprobacion)
}

func TestAprobar_SinEntrega_PasaAAprobado(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	resp, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado:        true,
		NotasAprobacion: "retirar en bodega",
	})
	require.NoError(t, err)
	assert.Equal(t, domprestamo.EstadoAprobado, resp.EstadoNombre)
	assert.Nil(t, resp.FechaEntregaReal)
	assert.Equal(t, "retirar en bodega", resp.NotasAprobacion)
}

func TestRechazar_EsTerminalYLiberaElArticulo(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	resp, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado:        false,
		NotasAprobacion: "artículo reservado para exhibición",
	})
	require.NoError(t, err)
	assert.Equal(t, domprestamo.EstadoRechazado, resp.EstadoNombre)

	// Rechazado no es activo: el artículo puede solicitarse de nuevo.
	_, err = e.uc.Solicitar(context.Background(), idOtroUsuario, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	assert.NoError(t, err)
}

// Aprobar un préstamo que no está Pendiente falla con Conflict y no toca nada.
func TestAprobar_NoPendiente_ConflictoSinCambios(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	hoy := inicio
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)

	guardado := e.prestamos.porID[creado.ID].Clone()

	_, err = e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, guardado, e.prestamos.porID[creado.ID],
		"una aprobación rechazada no debe modificar el préstamo")
}

func TestAprobar_EntregaRealFutura_Validation(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	futura := inicio.Add(24 * time.Hour)
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &futura,
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega y devolución
// ──────────────────────────────────────────────────────────────────────────────

func TestEntregar_DesdeAprobado(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{Aprobado: true})
	require.NoError(t, err)

	resp, err := e.uc.Entregar(context.Background(), creado.ID, idAprobador, dto.EntregarPrestamoRequest{
		FechaEntregaReal: inicio,
	})
	require.NoError(t, err)
	assert.Equal(t, domprestamo.EstadoEntregado, resp.EstadoNombre)
}

func TestDevolver_SoloDesdeEntregado(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	_, err := e.uc.Devolver(context.Background(), creado.ID, idAprobador, dto.DevolverPrestamoRequest{
		FechaDevolucionReal: inicio,
	})
	require.Error(t, err, "devolver un préstamo Pendiente debe fallar")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// Escenario D: mora antes de devolver y cierre definitivo después.
func TestDevolver_TardiaCierraLaMora(t *testing.T) {
	e := nuevoEntorno(t)
	// Entrega estimada hoy+1, devolución estimada hoy+3.
	creado := e.solicitar(t, idSolicitante, 1, intPtr(3))

	hoy := inicio
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)

	// Diez días después, aún Entregado: 7 días completos de mora.
	e.reloj.t = inicio.AddDate(0, 0, 10)
	consulta, err := e.uc.GetByID(creado.ID)
	require.NoError(t, err)
	assert.True(t, consulta.Vencido)
	assert.Equal(t, 7, consulta.DiasVencido)

	// La devolución, por tardía que sea, apaga la mora para siempre.
	resp, err := e.uc.Devolver(context.Background(), creado.ID, idAprobador, dto.DevolverPrestamoRequest{
		FechaDevolucionReal: e.reloj.t,
	})
	require.NoError(t, err)
	assert.Equal(t, domprestamo.EstadoDevuelto, resp.EstadoNombre)
	assert.False(t, resp.Vencido)
	assert.Zero(t, resp.DiasVencido)

	// Incluso mucho después, la consulta sigue sin mora.
	e.reloj.t = inicio.AddDate(0, 0, 100)
	consulta, err = e.uc.GetByID(creado.ID)
	require.NoError(t, err)
	assert.False(t, consulta.Vencido)
	assert.Zero(t, consulta.DiasVencido)
}

// Escenario C: con el préstamo Entregado, una nueva solicitud sobre el mismo
// artículo sigue en conflicto.
func TestSolicitar_ConPrestamoEntregado_Conflicto(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 5, nil)

	hoy := inicio
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)

	_, err = e.uc.Solicitar(context.Background(), idOtroUsuario, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

// Tras la devolución el artículo queda libre para un nuevo ciclo.
func TestSolicitar_DespuesDeDevolucion_Permitido(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 1, nil)

	hoy := inicio
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)
	_, err = e.uc.Devolver(context.Background(), creado.ID, idAprobador, dto.DevolverPrestamoRequest{
		FechaDevolucionReal: inicio,
	})
	require.NoError(t, err)

	_, err = e.uc.Solicitar(context.Background(), idOtroUsuario, dto.SolicitarPrestamoRequest{
		ArticuloID:           idArticulo,
		FechaEntregaEstimada: inicio.AddDate(0, 0, 3),
	})
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAuditoria_RegistraCadaTransicion(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.solicitar(t, idSolicitante, 1, nil)

	hoy := inicio
	_, err := e.uc.AprobarORechazar(context.Background(), creado.ID, idAprobador, dto.AprobarPrestamoRequest{
		Aprobado: true, FechaEntregaReal: &hoy,
	})
	require.NoError(t, err)
	_, err = e.uc.Devolver(context.Background(), creado.ID, idAprobador, dto.DevolverPrestamoRequest{
		FechaDevolucionReal: inicio,
	})
	require.NoError(t, err)

	require.Len(t, e.auditoria.registros, 3)
	assert.Equal(t, entity.AccionCrear, e.auditoria.registros[0].Accion)
	assert.Equal(t, entity.AccionEntregar, e.auditoria.registros[1].Accion)
	assert.Equal(t, entity.AccionDevolver, e.auditoria.registros[2].Accion)

	entrega := e.auditoria.registros[1]
	assert.Equal(t, "prestamos", entrega.Tabla)
	assert.Equal(t, creado.ID, entrega.RegistroID)
	assert.NotEmpty(t, entrega.ValoresAnteriores, "la transición debe llevar snapshot anterior")
	assert.NotEmpty(t, entrega.ValoresNuevos)
}
