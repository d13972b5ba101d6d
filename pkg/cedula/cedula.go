// Package cedula valida cédulas de identidad ecuatorianas de 10 dígitos
// (algoritmo módulo 10 del Registro Civil).
package cedula

import (
	"fmt"
	"strconv"
	"unicode"
)

// coeficientes del algoritmo módulo 10, aplicados a los 9 primeros dígitos
// de izquierda a derecha; si un producto supera 9 se le resta 9.
var coeficientes = [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}

// Validar verifica una cédula: 10 dígitos, código de provincia 01–24,
// tercer dígito menor a 6 y dígito verificador correcto.
func Validar(cedula string) error {
	digitos := extraerDigitos(cedula)
	if len(digitos) != 10 {
		return fmt.Errorf("cedula: debe tener 10 dígitos, se encontraron %d", len(digitos))
	}
	provincia, _ := strconv.Atoi(string(digitos[:2]))
	if provincia < 1 || provincia > 24 {
		return fmt.Errorf("cedula: código de provincia inválido: %02d", provincia)
	}
	if digitos[2]-'0' >= 6 {
		return fmt.Errorf("cedula: el tercer dígito debe ser menor a 6")
	}
	esperado := digitoVerificador(digitos[:9])
	if digitos[9] != esperado {
		return fmt.Errorf("cedula: dígito verificador inválido: esperado %c, recibido %c", esperado, digitos[9])
	}
	return nil
}

// digitoVerificador calcula el dígito de control para los 9 primeros dígitos.
func digitoVerificador(base []byte) byte {
	var suma int
	for i, d := range base {
		producto := int(d-'0') * coeficientes[i]
		if producto > 9 {
			producto -= 9
		}
		suma += producto
	}
	resto := suma % 10
	if resto == 0 {
		return '0'
	}
	return byte('0' + (10 - resto))
}

func extraerDigitos(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
