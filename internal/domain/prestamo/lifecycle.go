// Package prestamo contiene el ciclo de vida del préstamo: la máquina de
// estados, las ventanas temporales de cada transición y el cálculo de
// vencimiento. Es lógica pura: sin I/O, sin reloj global (el "ahora" siempre
// llega como parámetro).
package prestamo

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/domain"
)

// Nombres canónicos de los estados del préstamo (filas de estados_prestamo).
const (
	EstadoPendiente = "Pendiente"
	EstadoAprobado  = "Aprobado"
	EstadoEntregado = "Entregado"
	EstadoDevuelto  = "Devuelto"
	EstadoRechazado = "Rechazado"
)

// Ventanas temporales del ciclo de vida, en días.
const (
	MaxDiasEntregaEstimada      = 90  // fecha estimada de entrega a futuro
	MaxDiasDevolucionEstimada   = 180 // fecha estimada de devolución a futuro
	MaxDiasEntregaRealPasada    = 30  // entrega real hacia atrás al aprobar/entregar
	MaxDiasDevolucionRealPasada = 365 // devolución real hacia atrás
)

// MaxObservaciones longitud máxima del texto libre en cada etapa.
const MaxObservaciones = 500

// Clock fuente de tiempo inyectable para que los tests de bordes de fecha
// sean deterministas.
type Clock interface {
	Now() time.Time
}

// RelojSistema Clock de producción sobre time.Now.
type RelojSistema struct{}

func (RelojSistema) Now() time.Time { return time.Now() }

// transiciones legales de la máquina de estados. Pendiente→Entregado cubre la
// vía rápida de aprobación con entrega inmediata. Devuelto y Rechazado son
// terminales (sin salidas).
var transiciones = map[string][]string{
	EstadoPendiente: {EstadoAprobado, EstadoEntregado, EstadoRechazado},
	EstadoAprobado:  {EstadoEntregado},
	EstadoEntregado: {EstadoDevuelto},
}

// PuedeTransicionar informa si la transición desde→hacia es legal.
func PuedeTransicionar(desde, hacia string) bool {
	for _, destino := range transiciones[desde] {
		if destino == hacia {
			return true
		}
	}
	return false
}

// EsActivo informa si el estado mantiene "ocupado" al artículo
// (Pendiente, Aprobado o Entregado: aún no devuelto ni rechazado).
func EsActivo(estado string) bool {
	switch estado {
	case EstadoPendiente, EstadoAprobado, EstadoEntregado:
		return true
	}
	return false
}

// EstadosActivos devuelve los nombres de los estados activos, para las
// consultas de unicidad (un artículo: un préstamo activo a la vez).
func EstadosActivos() []string {
	return []string{EstadoPendiente, EstadoAprobado, EstadoEntregado}
}

// EsTerminal informa si el estado no admite más transiciones.
func EsTerminal(estado string) bool {
	return estado == EstadoDevuelto || estado == EstadoRechazado
}

// ValidarSolicitud verifica las fechas de una solicitud nueva:
//   - entregaEstimada estrictamente posterior a hoy y a no más de 90 días;
//   - devolucionEstimada (si viene) estrictamente posterior a entregaEstimada
//     y a no más de 180 días desde hoy.
//
// La comparación es a granularidad de día: solicitar para "mañana" es válido
// sin importar la hora.
func ValidarSolicitud(entregaEstimada time.Time, devolucionEstimada *time.Time, now time.Time) error {
	hoy := inicioDelDia(now)
	diaEntrega := inicioDelDia(entregaEstimada)

	if !diaEntrega.After(hoy) {
		return domain.NewValidation("ENTREGA_ESTIMADA_PASADA",
			"la fecha estimada de entrega debe ser posterior a hoy")
	}
	if diaEntrega.After(hoy.AddDate(0, 0, MaxDiasEntregaEstimada)) {
		return domain.NewValidation("ENTREGA_ESTIMADA_LEJANA",
			"la fecha estimada de entrega no puede superar los 90 días")
	}
	if devolucionEstimada != nil {
		diaDevolucion := inicioDelDia(*devolucionEstimada)
		if !diaDevolucion.After(diaEntrega) {
			return domain.NewValidation("DEVOLUCION_ANTES_DE_ENTREGA",
				"la fecha estimada de devolución debe ser posterior a la de entrega")
		}
		if diaDevolucion.After(hoy.AddDate(0, 0, MaxDiasDevolucionEstimada)) {
			return domain.NewValidation("DEVOLUCION_ESTIMADA_LEJANA",
				"la fecha estimada de devolución no puede superar los 180 días")
		}
	}
	return nil
}

// ValidarAprobacion verifica que el préstamo pueda aprobarse o rechazarse:
// debe estar Pendiente, y la entrega real (si se registra en la misma llamada,
// vía rápida de entrega inmediata) no puede ser futura ni anterior a 30 días.
func ValidarAprobacion(estadoActual string, entregaReal *time.Time, now time.Time) error {
	if estadoActual != EstadoPendiente {
		return domain.NewConflict("PRESTAMO_NO_PENDIENTE",
			"solo un préstamo pendiente puede aprobarse o rechazarse").
			WithDetail("estado_actual", estadoActual)
	}
	if entregaReal != nil {
		if err := validarFechaReal(*entregaReal, now, MaxDiasEntregaRealPasada,
			"ENTREGA_REAL_FUTURA", "ENTREGA_REAL_ANTIGUA", "entrega real"); err != nil {
			return err
		}
	}
	return nil
}

// ValidarEntrega verifica el registro de una entrega posterior a la aprobación
// (transición Aprobado→Entregado).
func ValidarEntrega(estadoActual string, entregaReal time.Time, now time.Time) error {
	if estadoActual != EstadoAprobado {
		return domain.NewConflict("PRESTAMO_NO_APROBADO",
			"solo un préstamo aprobado puede registrarse como entregado").
			WithDetail("estado_actual", estadoActual)
	}
	return validarFechaReal(entregaReal, now, MaxDiasEntregaRealPasada,
		"ENTREGA_REAL_FUTURA", "ENTREGA_REAL_ANTIGUA", "entrega real")
}

// ValidarDevolucion verifica la devolución: el préstamo debe estar Entregado y
// la fecha real no puede ser futura ni anterior a 365 días.
func ValidarDevolucion(estadoActual string, devolucionReal time.Time, now time.Time) error {
	if estadoActual != EstadoEntregado {
		return domain.NewConflict("PRESTAMO_NO_ENTREGADO",
			"solo un préstamo entregado puede devolverse").
			WithDetail("estado_actual", estadoActual)
	}
	return validarFechaReal(devolucionReal, now, MaxDiasDevolucionRealPasada,
		"DEVOLUCION_REAL_FUTURA", "DEVOLUCION_REAL_ANTIGUA", "devolución real")
}

// ValidarObservaciones limita el texto libre de cada etapa.
func ValidarObservaciones(texto string) error {
	if len([]rune(texto)) > MaxObservaciones {
		return domain.NewValidation("OBSERVACIONES_LARGAS",
			"las observaciones no pueden superar los 500 caracteres")
	}
	return nil
}

// Vencimiento calcula el estado de mora de un préstamo: vencido si existe
// fecha estimada de devolución, ya pasó, y aún no hay devolución real.
// diasVencido es el número de días completos transcurridos desde la fecha
// estimada (0 si no está vencido). Función pura.
func Vencimiento(devolucionEstimada, devolucionReal *time.Time, now time.Time) (vencido bool, diasVencido int) {
	if devolucionEstimada == nil || devolucionReal != nil {
		return false, 0
	}
	if !devolucionEstimada.Before(now) {
		return false, 0
	}
	return true, int(now.Sub(*devolucionEstimada).Hours() / 24)
}

// ValidarCoherencia verifica el invariante estado↔fechas de un préstamo ya
// construido: una devolución real exige estado Devuelto y viceversa, y un
// préstamo Entregado o Devuelto debe tener entrega real.
func ValidarCoherencia(estado string, entregaReal, devolucionReal *time.Time) error {
	if devolucionReal != nil && estado != EstadoDevuelto {
		return domain.NewConflict("ESTADO_INCOHERENTE",
			"un préstamo con devolución real debe estar en estado Devuelto").
			WithDetail("estado", estado)
	}
	if estado == EstadoDevuelto && devolucionReal == nil {
		return domain.NewConflict("ESTADO_INCOHERENTE",
			"un préstamo Devuelto debe registrar la fecha real de devolución")
	}
	if (estado == EstadoEntregado || estado == EstadoDevuelto) && entregaReal == nil {
		return domain.NewConflict("ESTADO_INCOHERENTE",
			"un préstamo Entregado debe registrar la fecha real de entrega").
			WithDetail("estado", estado)
	}
	return nil
}

func validarFechaReal(fecha, now time.Time, maxDiasPasados int, codigoFutura, codigoAntigua, etiqueta string) error {
	if fecha.After(now) {
		return domain.NewValidation(codigoFutura,
			"la fecha de "+etiqueta+" no puede estar en el futuro")
	}
	if inicioDelDia(fecha).Before(inicioDelDia(now).AddDate(0, 0, -maxDiasPasados)) {
		return domain.NewValidation(codigoAntigua,
			"la fecha de "+etiqueta+" es demasiado antigua")
	}
	return nil
}

func inicioDelDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
