package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo catálogo, defaults por rol y overrides en memoria.
type PermissionRepo struct {
	s *Store
}

// NewPermissionRepository construye el repositorio.
func NewPermissionRepository(s *Store) *PermissionRepo {
	return &PermissionRepo{s: s}
}

func (r *PermissionRepo) byName(name string) (entity.Permission, bool) {
	for _, p := range r.s.permissions {
		if p.Name == name {
			return p, true
		}
	}
	return entity.Permission{}, false
}

// EnsureCatalog inserta los nombres que falten.
func (r *PermissionRepo) EnsureCatalog(_ context.Context, names []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range names {
		if _, ok := r.byName(n); ok {
			continue
		}
		id := r.s.next("permissions")
		r.s.permissions[id] = entity.Permission{ID: id, Name: n}
	}
	return nil
}

// List devuelve el catálogo ordenado por nombre.
func (r *PermissionRepo) List(_ context.Context) ([]entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Permission, 0, len(r.s.permissions))
	for _, p := range r.s.permissions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByName busca un permiso por nombre.
func (r *PermissionRepo) GetByName(_ context.Context, name string) (*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.byName(name)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// RolePermissions nombres de los permisos por defecto del rol.
func (r *PermissionRepo) RolePermissions(_ context.Context, role string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("permissions.role"); err != nil {
		return nil, err
	}
	out := []string{}
	for id := range r.s.rolePerms[role] {
		out = append(out, r.s.permissions[id].Name)
	}
	sort.Strings(out)
	return out, nil
}

// GrantToRole agrega (role, permiso); si ya existe no hace nada.
func (r *PermissionRepo) GrantToRole(_ context.Context, role string, permissionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.rolePerms[role] == nil {
		r.s.rolePerms[role] = map[int64]struct{}{}
	}
	r.s.rolePerms[role][permissionID] = struct{}{}
	return nil
}

// RevokeFromRole quita (role, permiso).
func (r *PermissionRepo) RevokeFromRole(_ context.Context, role string, permissionID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.rolePerms[role], permissionID)
	return nil
}

// UserOverrides overrides del usuario ordenados por permiso.
func (r *PermissionRepo) UserOverrides(_ context.Context, userID int64) ([]entity.UserPermission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []entity.UserPermission{}
	for pid, granted := range r.s.overrides[userID] {
		out = append(out, entity.UserPermission{
			UserID:         userID,
			PermissionID:   pid,
			PermissionName: r.s.permissions[pid].Name,
			Granted:        granted,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PermissionName < out[j].PermissionName })
	return out, nil
}

// UpsertUserOverride inserta o reemplaza el override.
func (r *PermissionRepo) UpsertUserOverride(_ context.Context, userID, permissionID int64, granted bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.overrides[userID] == nil {
		r.s.overrides[userID] = map[int64]bool{}
	}
	r.s.overrides[userID][permissionID] = granted
	return nil
}
