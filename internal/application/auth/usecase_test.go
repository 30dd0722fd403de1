package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	perms := memory.NewPermissionRepository(store)
	require.NoError(t, setup.NewSeeder(users, perms, logger.Nop()).Seed(context.Background(), setup.AdminAccount{Username: "admin", Password: "admin"}))
	uc := auth.NewAuthUseCase(users, authz.NewResolver(users, perms, logger.Nop()),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "pos-test"}, logger.Nop())
	return uc, users
}

func withQuestions(t *testing.T, users *memory.UserRepo, username string) *entity.User {
	t.Helper()
	ctx := context.Background()
	u, err := users.GetByUsername(ctx, username)
	require.NoError(t, err)
	a1, err := auth.HashAnswer("Firulais")
	require.NoError(t, err)
	a2, err := auth.HashAnswer("Cali")
	require.NoError(t, err)
	q1, q2 := "¿Mascota?", "¿Ciudad?"
	require.NoError(t, users.Update(ctx, u.ID, entity.UserPatch{
		SecurityQuestion1: &q1, SecurityAnswer1Hash: &a1,
		SecurityQuestion2: &q2, SecurityAnswer2Hash: &a2,
	}))
	return u
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	uc, _ := newAuth(t)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", res.User.Username)
	assert.ElementsMatch(t, entity.PermissionCatalog, res.Permissions)

	session, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, session.UserID)
	assert.Equal(t, entity.RoleAdministrator, session.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "usuario inexistente no se distingue de clave incorrecta")
}

// ── Recuperación ────────────────────────────────────────────────────────────

func TestSecurityQuestions(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()

	_, err := uc.SecurityQuestions(ctx, dto.RecoveryQuestionsRequest{Username: "admin"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "sin preguntas configuradas")

	withQuestions(t, users, "admin")
	res, err := uc.SecurityQuestions(ctx, dto.RecoveryQuestionsRequest{Username: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "¿Mascota?", res.Question1)
	assert.Equal(t, "¿Ciudad?", res.Question2)

	_, err = uc.SecurityQuestions(ctx, dto.RecoveryQuestionsRequest{Username: "nadie"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResetPasswordWithAnswers(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	withQuestions(t, users, "admin")

	err := uc.ResetPasswordWithAnswers(ctx, dto.ResetPasswordRequest{
		Username: "admin", Answer1: "firulais", Answer2: "Bogotá", NewPassword: "nueva",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ResetPasswordWithAnswers(ctx, dto.ResetPasswordRequest{
		Username: "admin", Answer1: "  FIRULAIS ", Answer2: "cali", NewPassword: "nueva",
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "nueva"})
	assert.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ── Credenciales propias ────────────────────────────────────────────────────

func TestChangeOwnPassword(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	err = uc.ChangeOwnPassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "mal", NewPassword: "segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangeOwnPassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "admin", NewPassword: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ChangeOwnPassword(ctx, admin.ID, dto.ChangePasswordRequest{CurrentPassword: "admin", NewPassword: "segura"}))
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "segura"})
	assert.NoError(t, err)
}

func TestUpdateOwnSecurityQuestions(t *testing.T) {
	uc, users := newAuth(t)
	ctx := context.Background()
	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	in := dto.SecurityQuestionsRequest{
		CurrentPassword: "admin",
		Question1:       "¿Color?",
		Answer1:         "Azul",
		Question2:       "¿Comida?",
		Answer2:         "Arepa",
	}
	require.NoError(t, uc.UpdateOwnSecurityQuestions(ctx, admin.ID, in))

	res, err := uc.SecurityQuestions(ctx, dto.RecoveryQuestionsRequest{Username: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "¿Color?", res.Question1)

	in.Question2 = in.Question1
	assert.ErrorIs(t, uc.UpdateOwnSecurityQuestions(ctx, admin.ID, in), domain.ErrInvalidInput, "preguntas repetidas")
}
