package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestApplyOverrides_ConcedeYRevoca(t *testing.T) {
	base := entity.NewPermissionSet(entity.PermMakeSales, entity.PermViewSalesDashboard)

	out := base.ApplyOverrides([]entity.UserPermission{
		{PermissionName: entity.PermViewOwnSalesHistory, Granted: true},
		{PermissionName: entity.PermMakeSales, Granted: false},
	})

	assert.ElementsMatch(t, []string{entity.PermViewSalesDashboard, entity.PermViewOwnSalesHistory}, out.Sorted())
	assert.True(t, base.Has(entity.PermMakeSales), "el set base no debe mutarse")
}

func TestApplyOverrides_BaseVacia(t *testing.T) {
	out := entity.NewPermissionSet().ApplyOverrides([]entity.UserPermission{
		{PermissionName: entity.PermAdjustStock, Granted: true},
	})
	assert.True(t, out.Has(entity.PermAdjustStock))
	assert.Len(t, out, 1)
}

// Para cada permiso del catálogo y cada estado de override el resultado coincide
// con: override true → sí, override false → no, sin override → default del rol.
func TestApplyOverrides_TablaCompleta(t *testing.T) {
	for _, role := range []string{entity.RoleAdministrator, entity.RoleEmployee, "unknown"} {
		base := entity.NewPermissionSet(entity.DefaultRolePermissions(role)...)
		for _, perm := range entity.PermissionCatalog {
			inRole := base.Has(perm)

			assert.Equal(t, inRole, base.ApplyOverrides(nil).Has(perm), "%s/%s sin override", role, perm)
			assert.True(t, base.ApplyOverrides([]entity.UserPermission{{PermissionName: perm, Granted: true}}).Has(perm))
			assert.False(t, base.ApplyOverrides([]entity.UserPermission{{PermissionName: perm, Granted: false}}).Has(perm))
		}
	}
}

func TestDefaultRolePermissions(t *testing.T) {
	assert.Len(t, entity.DefaultRolePermissions(entity.RoleAdministrator), len(entity.PermissionCatalog))
	assert.ElementsMatch(t,
		[]string{entity.PermMakeSales, entity.PermViewSalesDashboard},
		entity.DefaultRolePermissions(entity.RoleEmployee))
	assert.Empty(t, entity.DefaultRolePermissions("guest"))
}
