package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/almacen-pro/prestamos-api/internal/application/auth"
	"github.com/almacen-pro/prestamos-api/internal/application/dto"
	"github.com/almacen-pro/prestamos-api/internal/domain"
	"github.com/almacen-pro/prestamos-api/internal/domain/entity"
	pkgjwt "github.com/almacen-pro/prestamos-api/pkg/jwt"
	"github.com/almacen-pro/prestamos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	porID     map[string]*entity.Usuario
	porEmail  map[string]*entity.Usuario
	porCedula map[string]*entity.Usuario
}

func nuevoFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{
		porID:     map[string]*entity.Usuario{},
		porEmail:  map[string]*entity.Usuario{},
		porCedula: map[string]*entity.Usuario{},
	}
}

func (f *fakeUsuarioRepo) Create(u *entity.Usuario) error {
	f.porID[u.ID] = u
	f.porEmail[u.Email] = u
	f.porCedula[u.Cedula] = u
	return nil
}

func (f *fakeUsuarioRepo) GetByID(id string) (*entity.Usuario, error) { return f.porID[id], nil }
func (f *fakeUsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return f.porEmail[email], nil
}
func (f *fakeUsuarioRepo) GetByCedula(cedula string) (*entity.Usuario, error) {
	return f.porCedula[cedula], nil
}
func (f *fakeUsuarioRepo) Update(u *entity.Usuario) error { f.porID[u.ID] = u; return nil }
func (f *fakeUsuarioRepo) List(bool, int, int) ([]*entity.Usuario, error) {
	return nil, nil
}

func (f *fakeUsuarioRepo) ActualizarUltimoAcceso(id string, momento time.Time) error {
	u, ok := f.porID[id]
	if !ok {
		return domain.NewNotFound("USUARIO_NO_ENCONTRADO", "usuario no encontrado")
	}
	u.UltimoAcceso = &momento
	return nil
}

type fakeRolRepo struct {
	porID map[string]*entity.Rol
}

func (f *fakeRolRepo) Create(r *entity.Rol) error             { f.porID[r.ID] = r; return nil }
func (f *fakeRolRepo) GetByID(id string) (*entity.Rol, error) { return f.porID[id], nil }
func (f *fakeRolRepo) GetByNombre(string) (*entity.Rol, error) {
	return nil, nil
}
func (f *fakeRolRepo) List() ([]*entity.Rol, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Harness
// ──────────────────────────────────────────────────────────────────────────────

const (
	idRolOperador = "rol-operador"
	secretPruebas = "secret-de-pruebas"
	// Cédula con dígito verificador correcto.
	cedulaValida = "1710034065"
)

func nuevoAuthUC() (*auth.AuthUseCase, *fakeUsuarioRepo) {
	usuarios := nuevoFakeUsuarioRepo()
	roles := &fakeRolRepo{porID: map[string]*entity.Rol{
		idRolOperador: {ID: idRolOperador, Nombre: entity.RolOperador, Activo: true},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := auth.NewAuthUseCase(usuarios, roles, auth.Config{
		JWTSecret:     secretPruebas,
		JWTIssuer:     "prestamos-api-test",
		JWTExpMinutes: 60,
	}, log)
	return uc, usuarios
}

func registroValido() dto.RegisterRequest {
	return dto.RegisterRequest{
		Cedula:    cedulaValida,
		Nombres:   "María",
		Apellidos: "Paredes",
		Email:     "Maria.Paredes@almacen.test",
		Password:  "secreta-123",
		RolID:     idRolOperador,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHashYEmailNormalizado(t *testing.T) {
	uc, usuarios := nuevoAuthUC()

	out, err := uc.Register(registroValido())
	require.NoError(t, err)

	assert.Equal(t, "maria.paredes@almacen.test", out.Email, "el email se guarda en minúsculas")
	assert.Equal(t, entity.RolOperador, out.RolNombre)
	assert.True(t, out.Activo)

	guardado := usuarios.porID[out.ID]
	require.NotNil(t, guardado)
	assert.NotEqual(t, "secreta-123", guardado.PasswordHash, "nunca se guarda la contraseña en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("secreta-123")))
}

func TestRegister_CedulaInvalida(t *testing.T) {
	uc, _ := nuevoAuthUC()
	in := registroValido()
	in.Cedula = "1710034066" // dígito verificador incorrecto

	_, err := uc.Register(in)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestRegister_PasswordCorta(t *testing.T) {
	uc, _ := nuevoAuthUC()
	in := registroValido()
	in.Password = "corta"

	_, err := uc.Register(in)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestRegister_EmailDuplicado_Conflicto(t *testing.T) {
	uc, _ := nuevoAuthUC()
	_, err := uc.Register(registroValido())
	require.NoError(t, err)

	in := registroValido()
	in.Cedula = "0926687856" // otra cédula válida, mismo email
	_, err = uc.Register(in)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestRegister_RolInexistente_NotFound(t *testing.T) {
	uc, _ := nuevoAuthUC()
	in := registroValido()
	in.RolID = "rol-fantasma"

	_, err := uc.Register(in)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteTokenConRolYRegistraAcceso(t *testing.T) {
	uc, usuarios := nuevoAuthUC()
	registrado, err := uc.Register(registroValido())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "MARIA.PAREDES@almacen.test", Password: "secreta-123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, email, rol, err := pkgjwt.Parse(secretPruebas, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registrado.ID, userID)
	assert.Equal(t, "maria.paredes@almacen.test", email)
	assert.Equal(t, entity.RolOperador, rol)

	guardado := usuarios.porID[registrado.ID]
	require.NotNil(t, guardado.UltimoAcceso, "el login registra el último acceso")
	assert.NotNil(t, out.User.UltimoAcceso)
}

func TestLogin_PasswordIncorrecta_MismoError(t *testing.T) {
	uc, _ := nuevoAuthUC()
	_, err := uc.Register(registroValido())
	require.NoError(t, err)

	_, errPassword := uc.Login(dto.LoginRequest{Email: "maria.paredes@almacen.test", Password: "equivocada"})
	_, errEmail := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "secreta-123"})

	require.True(t, domain.IsKind(errPassword, domain.KindUnauthorized))
	require.True(t, domain.IsKind(errEmail, domain.KindUnauthorized))
	// Mismo código para no revelar si el email existe.
	assert.Equal(t, domain.AsError(errEmail).Code, domain.AsError(errPassword).Code)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, usuarios := nuevoAuthUC()
	registrado, err := uc.Register(registroValido())
	require.NoError(t, err)
	usuarios.porID[registrado.ID].Activo = false

	_, err = uc.Login(dto.LoginRequest{Email: "maria.paredes@almacen.test", Password: "secreta-123"})
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))
	assert.Equal(t, "USUARIO_INACTIVO", domain.AsError(err).Code)
}
