// Package authz resuelve los permisos efectivos de un usuario: defaults del rol
// más overrides individuales (granted=true agrega, granted=false quita).
package authz

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// Resolver calcula permisos efectivos y administra grants/overrides.
type Resolver struct {
	users repository.UserRepository
	perms repository.PermissionRepository
	log   *logger.Logger
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository, perms repository.PermissionRepository, log *logger.Logger) *Resolver {
	return &Resolver{users: users, perms: perms, log: log.Component("authz")}
}

// EffectivePermissions devuelve el set efectivo del usuario.
// Usuario inexistente → set vacío (falla cerrado), sin error.
func (r *Resolver) EffectivePermissions(ctx context.Context, userID int64) (entity.PermissionSet, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authz: buscar usuario: %w", err)
	}
	if user == nil {
		return entity.NewPermissionSet(), nil
	}
	base, err := r.perms.RolePermissions(ctx, user.Role)
	if err != nil {
		return nil, fmt.Errorf("authz: permisos del rol: %w", err)
	}
	overrides, err := r.perms.UserOverrides(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authz: overrides: %w", err)
	}
	return entity.NewPermissionSet(base...).ApplyOverrides(overrides), nil
}

// HasPermission nunca falla: cualquier error de storage se registra y resuelve a false.
func (r *Resolver) HasPermission(ctx context.Context, userID int64, name string) bool {
	return r.HasAny(ctx, userID, name)
}

// HasAny indica si el usuario tiene al menos uno de los permisos.
func (r *Resolver) HasAny(ctx context.Context, userID int64, names ...string) bool {
	set, err := r.EffectivePermissions(ctx, userID)
	if err != nil {
		r.log.Error().Err(err).Int64("user_id", userID).Strs("permissions", names).Msg("resolución de permisos falló, se deniega")
		return false
	}
	for _, n := range names {
		if set.Has(n) {
			return true
		}
	}
	return false
}

// require devuelve ErrForbidden si el actor no tiene ninguno de los permisos.
func (r *Resolver) require(ctx context.Context, actorID int64, names ...string) error {
	if !r.HasAny(ctx, actorID, names...) {
		r.log.Warn().Int64("actor_id", actorID).Strs("required", names).Msg("permiso denegado")
		return domain.ErrForbidden
	}
	return nil
}

// GrantOrRevoke crea o reemplaza el override (target, permiso). Revocar guarda granted=false,
// no borra la fila. Repetir la misma operación deja el set efectivo igual.
func (r *Resolver) GrantOrRevoke(ctx context.Context, actorID, targetID int64, name string, granted bool) error {
	if err := r.require(ctx, actorID, entity.PermManageUsers); err != nil {
		return err
	}
	target, err := r.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	perm, err := r.lookup(ctx, name)
	if err != nil {
		return err
	}
	if err := r.perms.UpsertUserOverride(ctx, targetID, perm.ID, granted); err != nil {
		return err
	}
	r.log.Info().Int64("actor_id", actorID).Int64("user_id", targetID).
		Str("permission", perm.Name).Bool("granted", granted).Msg("override de permiso guardado")
	return nil
}

// AssignToRole agrega un permiso a los defaults de un rol (idempotente).
func (r *Resolver) AssignToRole(ctx context.Context, actorID int64, role, name string) error {
	if err := r.require(ctx, actorID, entity.PermManageUsers); err != nil {
		return err
	}
	if !entity.ValidRole(role) {
		return domain.Invalid("role", "rol desconocido")
	}
	perm, err := r.lookup(ctx, name)
	if err != nil {
		return err
	}
	return r.perms.GrantToRole(ctx, role, perm.ID)
}

// RevokeFromRole quita un permiso de los defaults de un rol.
func (r *Resolver) RevokeFromRole(ctx context.Context, actorID int64, role, name string) error {
	if err := r.require(ctx, actorID, entity.PermManageUsers); err != nil {
		return err
	}
	if !entity.ValidRole(role) {
		return domain.Invalid("role", "rol desconocido")
	}
	perm, err := r.lookup(ctx, name)
	if err != nil {
		return err
	}
	return r.perms.RevokeFromRole(ctx, role, perm.ID)
}

// UserPermissionsView catálogo completo, set efectivo y overrides explícitos del usuario.
func (r *Resolver) UserPermissionsView(ctx context.Context, actorID, targetID int64) (*dto.UserPermissionsResponse, error) {
	if err := r.require(ctx, actorID, entity.PermManageUsers); err != nil {
		return nil, err
	}
	target, err := r.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	catalog, err := r.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	set, err := r.EffectivePermissions(ctx, targetID)
	if err != nil {
		return nil, err
	}
	overrides, err := r.perms.UserOverrides(ctx, targetID)
	if err != nil {
		return nil, err
	}
	out := &dto.UserPermissionsResponse{
		UserID:    target.ID,
		Username:  target.Username,
		Role:      target.Role,
		Catalog:   catalog,
		Effective: set.Sorted(),
		Overrides: make([]dto.OverrideDTO, 0, len(overrides)),
	}
	for _, o := range overrides {
		out.Overrides = append(out.Overrides, dto.OverrideDTO{Permission: o.PermissionName, Granted: o.Granted})
	}
	return out, nil
}

// ListCatalog devuelve el catálogo de permisos.
func (r *Resolver) ListCatalog(ctx context.Context) ([]dto.PermissionDTO, error) {
	list, err := r.perms.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PermissionDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PermissionDTO{ID: p.ID, Name: p.Name})
	}
	return out, nil
}

func (r *Resolver) lookup(ctx context.Context, name string) (*entity.Permission, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("permission", "requerido")
	}
	perm, err := r.perms.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		return nil, domain.ErrPermissionNotFound
	}
	return perm, nil
}
