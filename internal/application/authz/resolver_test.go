package authz_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type env struct {
	store    *memory.Store
	resolver *authz.Resolver
	adminID  int64
	empID    int64
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	perms := memory.NewPermissionRepository(store)
	require.NoError(t, setup.NewSeeder(users, perms, logger.Nop()).Seed(ctx, setup.AdminAccount{Username: "admin", Password: "admin"}))
	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	emp := &entity.User{Username: "caja1", PasswordHash: "x", Role: entity.RoleEmployee}
	require.NoError(t, users.Create(ctx, emp))
	return &env{store: store, resolver: authz.NewResolver(users, perms, logger.Nop()), adminID: admin.ID, empID: emp.ID}
}

func TestEffectivePermissions_DefaultsDelRol(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	set, err := e.resolver.EffectivePermissions(ctx, e.empID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.DefaultRolePermissions(entity.RoleEmployee), set.Sorted())

	set, err = e.resolver.EffectivePermissions(ctx, e.adminID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.PermissionCatalog, set.Sorted())
}

func TestEffectivePermissions_UsuarioInexistente(t *testing.T) {
	e := newEnv(t)
	set, err := e.resolver.EffectivePermissions(context.Background(), 999)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.False(t, e.resolver.HasPermission(context.Background(), 999, entity.PermMakeSales))
}

func TestGrantOrRevoke_OverridesSobreElRol(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, entity.PermCancelSales, true))
	assert.True(t, e.resolver.HasPermission(ctx, e.empID, entity.PermCancelSales))

	require.NoError(t, e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, entity.PermMakeSales, false))
	assert.False(t, e.resolver.HasPermission(ctx, e.empID, entity.PermMakeSales), "un override false quita un default del rol")

	// Repetir la operación no cambia el resultado
	require.NoError(t, e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, entity.PermMakeSales, false))
	assert.False(t, e.resolver.HasPermission(ctx, e.empID, entity.PermMakeSales))

	require.NoError(t, e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, entity.PermMakeSales, true))
	assert.True(t, e.resolver.HasPermission(ctx, e.empID, entity.PermMakeSales))
}

func TestGrantOrRevoke_Errores(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	err := e.resolver.GrantOrRevoke(ctx, e.empID, e.empID, entity.PermManageUsers, true)
	assert.ErrorIs(t, err, domain.ErrForbidden, "sin manage_users no puede auto-otorgarse permisos")

	err = e.resolver.GrantOrRevoke(ctx, e.adminID, 999, entity.PermMakeSales, true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	err = e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, "fly_to_moon", true)
	assert.ErrorIs(t, err, domain.ErrPermissionNotFound)
}

func TestHasAny_ErrorDeStorageDeniega(t *testing.T) {
	e := newEnv(t)
	e.store.FailOn("permissions.role", errors.New("connection reset"))
	assert.False(t, e.resolver.HasAny(context.Background(), e.adminID, entity.PermManageUsers))
	assert.True(t, e.resolver.HasAny(context.Background(), e.adminID, entity.PermManageUsers), "el fallo era de una sola llamada")
}

func TestRolePermissions_AsignarYRevocar(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	require.NoError(t, e.resolver.AssignToRole(ctx, e.adminID, entity.RoleEmployee, entity.PermViewInventory))
	assert.True(t, e.resolver.HasPermission(ctx, e.empID, entity.PermViewInventory))

	require.NoError(t, e.resolver.RevokeFromRole(ctx, e.adminID, entity.RoleEmployee, entity.PermViewInventory))
	assert.False(t, e.resolver.HasPermission(ctx, e.empID, entity.PermViewInventory))

	assert.ErrorIs(t, e.resolver.AssignToRole(ctx, e.adminID, "manager", entity.PermViewInventory), domain.ErrInvalidInput)
	assert.ErrorIs(t, e.resolver.AssignToRole(ctx, e.empID, entity.RoleEmployee, entity.PermViewInventory), domain.ErrForbidden)
}

func TestUserPermissionsView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.resolver.GrantOrRevoke(ctx, e.adminID, e.empID, entity.PermViewSalesDashboard, false))

	view, err := e.resolver.UserPermissionsView(ctx, e.adminID, e.empID)
	require.NoError(t, err)
	assert.Len(t, view.Catalog, len(entity.PermissionCatalog))
	assert.Equal(t, []string{entity.PermMakeSales}, view.Effective)
	require.Len(t, view.Overrides, 1)
	assert.Equal(t, entity.PermViewSalesDashboard, view.Overrides[0].Permission)
	assert.False(t, view.Overrides[0].Granted)
}
