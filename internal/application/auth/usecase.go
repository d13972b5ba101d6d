package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/application/usecase"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	"github.com/almacen-pro/prestamos-api/internal/domain/repository"
	"github.com/almacen-pro/prestamos-api/pkg/cedula"
	"github.com/almacen-pro/prestamos-api/pkg/jwt"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

const minLenPassword = 8

// Config parámetros de emisión de tokens.
type Config struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// AuthUseCase alta de usuarios y autenticación.
type AuthUseCase struct {
	usuarios repository.UsuarioRepository
	roles    repository.RolRepository
	cfg      Config
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(usuarios repository.UsuarioRepository, roles repository.RolRepository, cfg Config, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{usuarios: usuarios, roles: roles, cfg: cfg, log: log}
}

// Register da de alta un usuario del personal. La cédula se valida con su
// dígito verificador y debe ser única, igual que el email.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	if err := cedula.Validar(in.Cedula); err != nil {
		return nil, domain.NewValidation("CEDULA_INVALIDA", err.Error())
	}
	if strings.TrimSpace(in.Nombres) == "" {
		return nil, domain.NewValidation("NOMBRES_REQUERIDOS", "los nombres son requeridos")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidation("EMAIL_INVALIDO", "el email no es válido")
	}
	if len(in.Password) < minLenPassword {
		return nil, domain.NewValidation("PASSWORD_CORTA", "la contraseña debe tener al menos 8 caracteres")
	}

	rol, err := uc.roles.GetByID(in.RolID)
	if err != nil {
		return nil, err
	}
	if rol == nil {
		return nil, domain.NewNotFound("ROL_NO_ENCONTRADO", "rol no encontrado")
	}

	existente, err := uc.usuarios.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflict("EMAIL_DUPLICADO", "ya existe un usuario con ese email")
	}
	existente, err = uc.usuarios.GetByCedula(in.Cedula)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewConflict("CEDULA_DUPLICADA", "ya existe un usuario con esa cédula")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &entity.Usuario{
		ID:           uuid.New().String(),
		Cedula:       in.Cedula,
		Nombres:      strings.TrimSpace(in.Nombres),
		Apellidos:    strings.TrimSpace(in.Apellidos),
		Email:        email,
		Telefono:     in.Telefono,
		PasswordHash: string(hash),
		RolID:        in.RolID,
		Activo:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.usuarios.Create(u); err != nil {
		return nil, err
	}
	uc.log.Info().Str("usuario_id", u.ID).Str("rol", rol.Nombre).Msg("usuario registrado")
	return usecase.UsuarioAResponse(u, rol.Nombre), nil
}

// Login valida credenciales y emite un JWT con el rol embebido. Como efecto
// registra el último acceso del usuario; un fallo en ese registro no impide
// el login.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	usuario, err := uc.usuarios.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	// Mismo error para usuario inexistente y contraseña incorrecta.
	credInvalidas := domain.NewUnauthorized("CREDENCIALES_INVALIDAS", "email o contraseña incorrectos")
	if usuario == nil {
		return nil, credInvalidas
	}
	if !usuario.Activo {
		return nil, domain.NewUnauthorized("USUARIO_INACTIVO", "el usuario está desactivado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, credInvalidas
	}

	rol, err := uc.roles.GetByID(usuario.RolID)
	if err != nil {
		return nil, err
	}
	rolNombre := ""
	if rol != nil {
		rolNombre = rol.Nombre
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, usuario.ID, usuario.Email, rolNombre, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		return nil, err
	}

	momento := time.Now()
	if err := uc.usuarios.ActualizarUltimoAcceso(usuario.ID, momento); err != nil {
		uc.log.Warn().Err(err).Str("usuario_id", usuario.ID).Msg("no se pudo registrar el último acceso")
	} else {
		usuario.UltimoAcceso = &momento
	}

	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.UsuarioAResponse(usuario, rolNombre),
	}, nil
}
