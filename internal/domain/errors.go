package domain

import "errors"

// Kind clasifica los errores de negocio en un conjunto cerrado.
// Todo error de negocio es síncrono y no reintentable; los fallos de
// infraestructura (DB caída, etc.) NO usan estos kinds y se propagan opacos.
type Kind int

const (
	KindValidation   Kind = iota + 1 // entrada malformada o fuera de rango
	KindNotFound                     // entidad referenciada no existe
	KindConflict                     // violación de la máquina de estados o de unicidad
	KindUnauthorized                 // credenciales ausentes o inválidas
	KindForbidden                    // el actor no tiene permisos
)

// Error es el error de negocio del dominio: kind + código estable legible por
// máquina + mensaje para humanos + detalles estructurados opcionales.
// La capa HTTP lo traduce a status; aquí no hay nociones de transporte.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]string
}

func (e *Error) Error() string { return e.Message }

// WithDetail agrega un detalle estructurado y devuelve el mismo error (encadenable).
func (e *Error) WithDetail(clave, valor string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[clave] = valor
	return e
}

// NewValidation error de entrada inválida (código estable + mensaje).
func NewValidation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// NewNotFound error de entidad referenciada ausente.
func NewNotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

// NewConflict error de estado o unicidad (la operación no aplica al estado actual).
func NewConflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// NewUnauthorized error de autenticación.
func NewUnauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

// NewForbidden error de autorización.
func NewForbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

// KindOf devuelve el Kind de un error de negocio, o 0 si el error es de
// infraestructura (u otro tipo).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind informa si err es un error de negocio del kind dado.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// AsError devuelve el *Error de negocio contenido en err, o nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
