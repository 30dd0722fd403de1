package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo catálogo de permisos, defaults por rol y overrides por usuario.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el repositorio.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// EnsureCatalog inserta los nombres que falten.
func (r *PermissionRepo) EnsureCatalog(ctx context.Context, names []string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO permissions (name)
		SELECT unnest($1::text[])
		ON CONFLICT (name) DO NOTHING`, names)
	if err != nil {
		return fmt.Errorf("ensure permission catalog: %w", err)
	}
	return nil
}

func (r *PermissionRepo) List(ctx context.Context) ([]entity.Permission, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM permissions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()

	list := []entity.Permission{}
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PermissionRepo) GetByName(ctx context.Context, name string) (*entity.Permission, error) {
	var p entity.Permission
	err := r.q.QueryRow(ctx, `SELECT id, name FROM permissions WHERE name = $1`, name).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission by name: %w", err)
	}
	return &p, nil
}

// RolePermissions nombres de permiso asignados al rol, ordenados.
func (r *PermissionRepo) RolePermissions(ctx context.Context, role string) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.name
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role = $1
		ORDER BY p.name`, role)
	if err != nil {
		return nil, fmt.Errorf("role permissions: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan role permission: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *PermissionRepo) GrantToRole(ctx context.Context, role string, permissionID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO role_permissions (role, permission_id) VALUES ($1, $2)
		ON CONFLICT (role, permission_id) DO NOTHING`, role, permissionID)
	if err != nil {
		return fmt.Errorf("grant permission to role: %w", err)
	}
	return nil
}

func (r *PermissionRepo) RevokeFromRole(ctx context.Context, role string, permissionID int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role = $1 AND permission_id = $2`, role, permissionID)
	if err != nil {
		return fmt.Errorf("revoke permission from role: %w", err)
	}
	return nil
}

// UserOverrides overrides del usuario ordenados por permiso.
func (r *PermissionRepo) UserOverrides(ctx context.Context, userID int64) ([]entity.UserPermission, error) {
	rows, err := r.q.Query(ctx, `
		SELECT up.user_id, up.permission_id, p.name, up.granted
		FROM user_permissions up
		JOIN permissions p ON p.id = up.permission_id
		WHERE up.user_id = $1
		ORDER BY p.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("user overrides: %w", err)
	}
	defer rows.Close()

	list := []entity.UserPermission{}
	for rows.Next() {
		var o entity.UserPermission
		if err := rows.Scan(&o.UserID, &o.PermissionID, &o.PermissionName, &o.Granted); err != nil {
			return nil, fmt.Errorf("scan user override: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpsertUserOverride inserta o reemplaza el override (user, permiso).
func (r *PermissionRepo) UpsertUserOverride(ctx context.Context, userID, permissionID int64, granted bool) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_permissions (user_id, permission_id, granted) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, permission_id) DO UPDATE SET granted = EXCLUDED.granted`,
		userID, permissionID, granted)
	if err != nil {
		return fmt.Errorf("upsert user override: %w", err)
	}
	return nil
}
