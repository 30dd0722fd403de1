package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// PermissionRepository catálogo de permisos, defaults por rol y overrides por usuario.
type PermissionRepository interface {
	// EnsureCatalog inserta los nombres que falten (idempotente).
	EnsureCatalog(ctx context.Context, names []string) error
	List(ctx context.Context) ([]entity.Permission, error)
	// GetByName devuelve (nil, nil) si el permiso no está en el catálogo.
	GetByName(ctx context.Context, name string) (*entity.Permission, error)

	RolePermissions(ctx context.Context, role string) ([]string, error)
	GrantToRole(ctx context.Context, role string, permissionID int64) error
	RevokeFromRole(ctx context.Context, role string, permissionID int64) error

	UserOverrides(ctx context.Context, userID int64) ([]entity.UserPermission, error)
	// UpsertUserOverride inserta o reemplaza el override (user, permiso).
	UpsertUserOverride(ctx context.Context, userID, permissionID int64, granted bool) error
}
