package usecase

import (
	"time"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
)

// UsuarioUseCase gestión de usuarios existentes (el alta y el login viven en
// application/auth).
type UsuarioUseCase struct {
	repo  repository.UsuarioRepository
	roles repository.RolRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository, roles repository.RolRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo, roles: roles}
}

// GetByID obtiene un usuario con el nombre de su rol; (nil, nil) si no existe.
func (uc *UsuarioUseCase) GetByID(id string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	rolNombre, err := uc.nombreRol(usuario.RolID)
	if err != nil {
		return nil, err
	}
	return UsuarioAResponse(usuario, rolNombre), nil
}

// Update actualización parcial. La cédula y el email no se modifican después
// del alta.
func (uc *UsuarioUseCase) Update(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	if in.Nombres != nil {
		if *in.Nombres == "" {
			return nil, domain.NewValidation("NOMBRES_REQUERIDOS", "los nombres son requeridos")
		}
		usuario.Nombres = *in.Nombres
	}
	if in.Apellidos != nil {
		usuario.Apellidos = *in.Apellidos
	}
	if in.Telefono != nil {
		usuario.Telefono = *in.Telefono
	}
	if in.RolID != nil {
		rol, err := uc.roles.GetByID(*in.RolID)
		if err != nil {
			return nil, err
		}
		if rol == nil {
			return nil, domain.NewNotFound("ROL_NO_ENCONTRADO", "rol no encontrado")
		}
		usuario.RolID = *in.RolID
	}
	if in.Activo != nil {
		usuario.Activo = *in.Activo
	}
	usuario.UpdatedAt = time.Now()
	if err := uc.repo.Update(usuario); err != nil {
		return nil, err
	}
	rolNombre, err := uc.nombreRol(usuario.RolID)
	if err != nil {
		return nil, err
	}
	return UsuarioAResponse(usuario, rolNombre), nil
}

// Desactivar baja lógica: el usuario conserva su historial de préstamos.
func (uc *UsuarioUseCase) Desactivar(id string) (*dto.UsuarioResponse, error) {
	activo := false
	return uc.Update(id, dto.UpdateUsuarioRequest{Activo: &activo})
}

// List lista usuarios con los nombres de rol resueltos.
func (uc *UsuarioUseCase) List(soloActivos bool, page dto.PageRequest) (*dto.UsuarioListResponse, error) {
	page.DefaultPage()
	lista, err := uc.repo.List(soloActivos, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	roles, err := uc.roles.List()
	if err != nil {
		return nil, err
	}
	nombrePorID := make(map[string]string, len(roles))
	for _, r := range roles {
		nombrePorID[r.ID] = r.Nombre
	}
	items := make([]dto.UsuarioResponse, 0, len(lista))
	for _, u := range lista {
		items = append(items, *UsuarioAResponse(u, nombrePorID[u.RolID]))
	}
	return &dto.UsuarioListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListRoles expone el catálogo de roles.
func (uc *UsuarioUseCase) ListRoles() ([]dto.CatalogoResponse, error) {
	roles, err := uc.roles.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogoResponse, 0, len(roles))
	for _, r := range roles {
		items = append(items, *catalogoResponse(r.ID, r.Nombre, r.Descripcion, r.Activo, r.CreatedAt))
	}
	return items, nil
}

func (uc *UsuarioUseCase) nombreRol(id string) (string, error) {
	rol, err := uc.roles.GetByID(id)
	if err != nil {
		return "", err
	}
	if rol == nil {
		return "", nil
	}
	return rol.Nombre, nil
}

// UsuarioAResponse mapea la entidad a su representación pública, sin el hash.
func UsuarioAResponse(u *entity.Usuario, rolNombre string) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:           u.ID,
		Cedula:       u.Cedula,
		Nombres:      u.Nombres,
		Apellidos:    u.Apellidos,
		Email:        u.Email,
		Telefono:     u.Telefono,
		RolID:        u.RolID,
		RolNombre:    rolNombre,
		Activo:       u.Activo,
		UltimoAcceso: u.UltimoAcceso,
		CreatedAt:    u.CreatedAt,
	}
}
