package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/application/users"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func newUseCase(t *testing.T) (*users.UserUseCase, *memory.UserRepo, *memory.Store, int64) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewUserRepository(store)
	perms := memory.NewPermissionRepository(store)
	require.NoError(t, setup.NewSeeder(repo, perms, logger.Nop()).Seed(ctx, setup.AdminAccount{Username: "admin", Password: "admin"}))
	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	uc := users.NewUserUseCase(repo, authz.NewResolver(repo, perms, logger.Nop()), logger.Nop())
	return uc, repo, store, admin.ID
}

func TestCreateUser(t *testing.T) {
	uc, repo, _, adminID := newUseCase(t)
	ctx := context.Background()

	got, err := uc.Create(ctx, adminID, dto.CreateUserRequest{
		Username:          "caja1",
		Password:          "1234",
		Role:              entity.RoleEmployee,
		SecurityQuestion1: "¿Mascota?",
		SecurityAnswer1:   "Firulais",
		SecurityQuestion2: "¿Ciudad?",
		SecurityAnswer2:   "Cali",
	})
	require.NoError(t, err)
	assert.Equal(t, "caja1", got.Username)
	assert.True(t, got.HasSecurityQuestions)

	stored, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "1234"))
	assert.True(t, auth.CheckAnswer(stored.SecurityAnswer1Hash, "  firulais "))

	_, err = uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "CAJA1", Password: "1234", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "x", Password: "1234", Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "x", Password: "12", Role: entity.RoleEmployee})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "contraseña demasiado corta")
}

func TestCreateUser_SinPermiso(t *testing.T) {
	uc, _, _, adminID := newUseCase(t)
	ctx := context.Background()
	emp, err := uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "caja1", Password: "1234", Role: entity.RoleEmployee})
	require.NoError(t, err)

	_, err = uc.Create(ctx, emp.ID, dto.CreateUserRequest{Username: "caja2", Password: "1234", Role: entity.RoleAdministrator})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.List(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteUser_UnicoAdministrador(t *testing.T) {
	uc, _, _, adminID := newUseCase(t)
	ctx := context.Background()

	err := uc.Delete(ctx, adminID, adminID)
	assert.ErrorIs(t, err, domain.ErrLastAdministrator, "el único admin no puede borrarse a sí mismo")

	second, err := uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "admin2", Password: "1234", Role: entity.RoleAdministrator})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, adminID, adminID))

	_, err = uc.Get(ctx, second.ID, adminID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, second.ID, second.ID), domain.ErrLastAdministrator)
}

func TestUpdateUser_DegradarUnicoAdministrador(t *testing.T) {
	uc, _, _, adminID := newUseCase(t)
	ctx := context.Background()
	role := entity.RoleEmployee

	_, err := uc.Update(ctx, adminID, adminID, dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, domain.ErrLastAdministrator)

	name := "jefe"
	got, err := uc.Update(ctx, adminID, adminID, dto.UpdateUserRequest{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "jefe", got.Username)
	assert.Equal(t, entity.RoleAdministrator, got.Role)
}

func TestUpdateUser_NuevaClave(t *testing.T) {
	uc, repo, _, adminID := newUseCase(t)
	ctx := context.Background()
	emp, err := uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "caja1", Password: "1234", Role: entity.RoleEmployee})
	require.NoError(t, err)

	pwd := "nueva"
	_, err = uc.Update(ctx, adminID, emp.ID, dto.UpdateUserRequest{Password: &pwd})
	require.NoError(t, err)
	stored, err := repo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "nueva"))

	_, err = uc.Update(ctx, adminID, 999, dto.UpdateUserRequest{Password: &pwd})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUser_ConVentasEsConflicto(t *testing.T) {
	uc, _, store, adminID := newUseCase(t)
	ctx := context.Background()
	emp, err := uc.Create(ctx, adminID, dto.CreateUserRequest{Username: "caja1", Password: "1234", Role: entity.RoleEmployee})
	require.NoError(t, err)
	require.NoError(t, memory.NewSaleRepository(store).Create(ctx, &entity.Sale{UserID: emp.ID, PaymentType: entity.PaymentOther}))

	assert.ErrorIs(t, uc.Delete(ctx, adminID, emp.ID), domain.ErrConflict)
}
