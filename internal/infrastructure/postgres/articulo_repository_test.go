package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Construcción del query de listado
// ──────────────────────────────────────────────────────────────────────────────

func TestConstruirListaArticulos_BusquedaPliegaAmbosLados(t *testing.T) {
	// El término llega ya plegado desde la capa de aplicación; las columnas
	// deben plegarse igual o "fútbol" almacenado nunca casaría con "futbol".
	query, args, err := construirListaArticulos(repository.FiltroArticulos{Busqueda: "futbol"})
	require.NoError(t, err)

	for _, columna := range []string{"nombre", "equipo", "codigo"} {
		assert.Contains(t, query, "translate(lower("+columna+"), 'áéíóúüñ', 'aeiouun')",
			"la columna %s debe plegarse del lado SQL", columna)
	}
	assert.NotContains(t, query, "lower(nombre) LIKE", "lower a secas no pliega tildes")

	require.Len(t, args, 3)
	for _, arg := range args {
		assert.Equal(t, "%futbol%", arg)
	}
}

func TestConstruirListaArticulos_SinBusquedaNoPliega(t *testing.T) {
	query, args, err := construirListaArticulos(repository.FiltroArticulos{})
	require.NoError(t, err)

	assert.NotContains(t, query, "translate")
	assert.Empty(t, args)
	assert.Contains(t, query, `ORDER BY "codigo" ASC`)
}

func TestConstruirListaArticulos_FiltrosYPaginacion(t *testing.T) {
	query, args, err := construirListaArticulos(repository.FiltroArticulos{
		CategoriaID: "cat-1",
		EstadoID:    "est-1",
		SoloActivos: true,
		Limit:       10,
		Offset:      20,
	})
	require.NoError(t, err)

	assert.Contains(t, query, `"categoria_id"`)
	assert.Contains(t, query, `"estado_articulo_id"`)
	assert.Contains(t, query, `"activo" IS TRUE`)
	assert.Contains(t, query, "LIMIT")
	assert.Contains(t, query, "OFFSET")
	assert.Contains(t, args, "cat-1")
	assert.Contains(t, args, "est-1")
}
