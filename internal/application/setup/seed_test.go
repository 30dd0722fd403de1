package setup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

func newSeeder() (*setup.Seeder, *memory.UserRepo, *memory.PermissionRepo) {
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	perms := memory.NewPermissionRepository(store)
	return setup.NewSeeder(users, perms, logger.Nop()), users, perms
}

func TestSeed_CreaCatalogoYAdmin(t *testing.T) {
	ctx := context.Background()
	seeder, users, perms := newSeeder()

	require.NoError(t, seeder.Seed(ctx, setup.AdminAccount{Username: "admin", Password: "admin"}))

	catalog, err := perms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, len(entity.PermissionCatalog))

	adminPerms, err := perms.RolePermissions(ctx, entity.RoleAdministrator)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.PermissionCatalog, adminPerms)

	empPerms, err := perms.RolePermissions(ctx, entity.RoleEmployee)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.DefaultRolePermissions(entity.RoleEmployee), empPerms)

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdministrator, admin.Role)
	assert.True(t, auth.CheckPassword(admin.PasswordHash, "admin"))
}

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	seeder, users, perms := newSeeder()
	acct := setup.AdminAccount{Username: "admin", Password: "admin"}

	require.NoError(t, seeder.Seed(ctx, acct))
	require.NoError(t, seeder.Seed(ctx, acct))

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	catalog, err := perms.List(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, len(entity.PermissionCatalog))
}

func TestSeed_NoPisaCambiosDelRolEmpleado(t *testing.T) {
	ctx := context.Background()
	seeder, _, perms := newSeeder()
	acct := setup.AdminAccount{Username: "admin", Password: "admin"}
	require.NoError(t, seeder.Seed(ctx, acct))

	dash, err := perms.GetByName(ctx, entity.PermViewSalesDashboard)
	require.NoError(t, err)
	require.NoError(t, perms.RevokeFromRole(ctx, entity.RoleEmployee, dash.ID))

	require.NoError(t, seeder.Seed(ctx, acct))
	empPerms, err := perms.RolePermissions(ctx, entity.RoleEmployee)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.PermMakeSales}, empPerms)
}

func TestSeed_CredencialesInvalidas(t *testing.T) {
	seeder, _, _ := newSeeder()
	err := seeder.Seed(context.Background(), setup.AdminAccount{Username: "admin", Password: "x"})
	assert.Error(t, err)
}
