// Package setup siembra el catálogo de permisos, los defaults por rol y el administrador inicial.
package setup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// AdminAccount credenciales del administrador inicial.
type AdminAccount struct {
	Username string
	Password string
}

// Seeder ejecuta la siembra al arrancar. Es idempotente.
type Seeder struct {
	users repository.UserRepository
	perms repository.PermissionRepository
	log   *logger.Logger
}

// NewSeeder construye el seeder.
func NewSeeder(users repository.UserRepository, perms repository.PermissionRepository, log *logger.Logger) *Seeder {
	return &Seeder{users: users, perms: perms, log: log.Component("setup")}
}

// Seed inserta el catálogo, da todo el catálogo al administrador y los defaults al empleado
// (solo si el rol aún no tiene permisos, para no pisar cambios hechos por un admin),
// y crea el administrador inicial si no hay usuarios.
func (s *Seeder) Seed(ctx context.Context, admin AdminAccount) error {
	if err := s.perms.EnsureCatalog(ctx, entity.PermissionCatalog); err != nil {
		return fmt.Errorf("setup: catálogo: %w", err)
	}
	if err := s.grant(ctx, entity.RoleAdministrator, entity.DefaultRolePermissions(entity.RoleAdministrator)); err != nil {
		return err
	}
	current, err := s.perms.RolePermissions(ctx, entity.RoleEmployee)
	if err != nil {
		return fmt.Errorf("setup: permisos de empleado: %w", err)
	}
	if len(current) == 0 {
		if err := s.grant(ctx, entity.RoleEmployee, entity.DefaultRolePermissions(entity.RoleEmployee)); err != nil {
			return err
		}
	}
	return s.bootstrapAdmin(ctx, admin)
}

func (s *Seeder) grant(ctx context.Context, role string, names []string) error {
	for _, name := range names {
		perm, err := s.perms.GetByName(ctx, name)
		if err != nil {
			return fmt.Errorf("setup: permiso %s: %w", name, err)
		}
		if perm == nil {
			return fmt.Errorf("setup: permiso %s no está en el catálogo", name)
		}
		if err := s.perms.GrantToRole(ctx, role, perm.ID); err != nil {
			return fmt.Errorf("setup: asignar %s a %s: %w", name, role, err)
		}
	}
	return nil
}

func (s *Seeder) bootstrapAdmin(ctx context.Context, admin AdminAccount) error {
	existing, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("setup: listar usuarios: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	username := strings.TrimSpace(admin.Username)
	if username == "" || len(admin.Password) < auth.MinPasswordLength {
		return fmt.Errorf("setup: credenciales del administrador inicial inválidas")
	}
	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}
	user := &entity.User{Username: username, PasswordHash: hash, Role: entity.RoleAdministrator}
	if err := s.users.Create(ctx, user); err != nil {
		return fmt.Errorf("setup: crear administrador: %w", err)
	}
	s.log.Warn().Str("username", username).Msg("administrador inicial creado, cambie la contraseña")
	return nil
}
