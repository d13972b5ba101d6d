package entity

import "time"

// Usuario representa un miembro del personal interno.
type Usuario struct {
	ID           string
	Cedula       string // 10 dígitos, validada con dígito verificador
	Nombres      string
	Apellidos    string
	Email        string // único
	Telefono     string
	PasswordHash string // bcrypt, nunca plano después de persistir
	RolID        string
	Activo       bool
	UltimoAcceso *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NombreCompleto nombres + apellidos para presentación.
func (u *Usuario) NombreCompleto() string {
	if u.Apellidos == "" {
		return u.Nombres
	}
	return u.Nombres + " " + u.Apellidos
}
