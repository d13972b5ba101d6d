package cedula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/almacen-pro/prestamos-api/pkg/cedula"
)

// Vectores calculados a mano con el algoritmo módulo 10:
// 1710034065 → productos 2,7,2,0,0,3,8,0,3 → suma 25 → verificador 5.
// 0926687856 → productos 0,9,4,6,3,8,5,8,1 → suma 44 → verificador 6.
func TestValidar_CedulasValidas(t *testing.T) {
	assert.NoError(t, cedula.Validar("1710034065"))
	assert.NoError(t, cedula.Validar("0926687856"))
	assert.NoError(t, cedula.Validar("171-003406-5"), "los separadores deben ignorarse")
}

func TestValidar_DigitoVerificadorIncorrecto(t *testing.T) {
	assert.Error(t, cedula.Validar("1710034066"))
	assert.Error(t, cedula.Validar("0926687857"))
}

func TestValidar_ProvinciaInvalida(t *testing.T) {
	assert.Error(t, cedula.Validar("9910034065"), "provincia 99 no existe")
	assert.Error(t, cedula.Validar("0010034065"), "provincia 00 no existe")
}

func TestValidar_TercerDigitoMayorA5(t *testing.T) {
	assert.Error(t, cedula.Validar("1760034065"))
}

func TestValidar_LongitudIncorrecta(t *testing.T) {
	assert.Error(t, cedula.Validar("171003406"))
	assert.Error(t, cedula.Validar("17100340655"))
	assert.Error(t, cedula.Validar(""))
}
