package dto

import "time"

// RegisterRequest alta de usuario (solo Administrador).
type RegisterRequest struct {
	Cedula    string `json:"cedula"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Password  string `json:"password"`
	RolID     string `json:"rol_id"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}

// UpdateUsuarioRequest actualización parcial de un usuario.
type UpdateUsuarioRequest struct {
	Nombres   *string `json:"nombres"`
	Apellidos *string `json:"apellidos"`
	Telefono  *string `json:"telefono"`
	RolID     *string `json:"rol_id"`
	Activo    *bool   `json:"activo"`
}

// UsuarioResponse representación de un usuario (nunca incluye el hash).
type UsuarioResponse struct {
	ID           string     `json:"id"`
	Cedula       string     `json:"cedula"`
	Nombres      string     `json:"nombres"`
	Apellidos    string     `json:"apellidos"`
	Email        string     `json:"email"`
	Telefono     string     `json:"telefono,omitempty"`
	RolID        string     `json:"rol_id"`
	RolNombre    string     `json:"rol_nombre,omitempty"`
	Activo       bool       `json:"activo"`
	UltimoAcceso *time.Time `json:"ultimo_acceso,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UsuarioListResponse listado paginado.
type UsuarioListResponse struct {
	Items []UsuarioResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
