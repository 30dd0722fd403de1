// Package users administración de usuarios. Toda operación requiere manage_users.
package users

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type permissionChecker interface {
	HasAny(ctx context.Context, userID int64, names ...string) bool
}

// UserUseCase CRUD de usuarios.
type UserUseCase struct {
	repo  repository.UserRepository
	authz permissionChecker
	log   *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, authz permissionChecker, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, authz: authz, log: log.Component("users")}
}

func (uc *UserUseCase) require(ctx context.Context, actorID int64) error {
	if !uc.authz.HasAny(ctx, actorID, entity.PermManageUsers) {
		return domain.ErrForbidden
	}
	return nil
}

// Create crea un usuario. Username duplicado (sin distinguir mayúsculas) → ErrUsernameTaken.
func (uc *UserUseCase) Create(ctx context.Context, actorID int64, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.require(ctx, actorID); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:          strings.TrimSpace(in.Username),
		PasswordHash:      hash,
		Role:              in.Role,
		SecurityQuestion1: strings.TrimSpace(in.SecurityQuestion1),
		SecurityQuestion2: strings.TrimSpace(in.SecurityQuestion2),
	}
	if in.SecurityAnswer1 != "" {
		if user.SecurityAnswer1Hash, err = auth.HashAnswer(in.SecurityAnswer1); err != nil {
			return nil, err
		}
	}
	if in.SecurityAnswer2 != "" {
		if user.SecurityAnswer2Hash, err = auth.HashAnswer(in.SecurityAnswer2); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Int64("actor_id", actorID).Msg("usuario creado")
	return auth.ToUserResponse(user), nil
}

// List todos los usuarios.
func (uc *UserUseCase) List(ctx context.Context, actorID int64) ([]dto.UserResponse, error) {
	if err := uc.require(ctx, actorID); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Get un usuario por ID.
func (uc *UserUseCase) Get(ctx context.Context, actorID, id int64) (*dto.UserResponse, error) {
	if err := uc.require(ctx, actorID); err != nil {
		return nil, err
	}
	u, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u), nil
}

// Update aplica los campos presentes. Degradar al único administrador → ErrLastAdministrator.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.require(ctx, actorID); err != nil {
		return nil, err
	}
	current, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	patch := entity.UserPatch{Username: trimmed(in.Username), Role: in.Role}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}
	if patch.Empty() {
		return auth.ToUserResponse(current), nil
	}
	if current.Role == entity.RoleAdministrator && in.Role != nil && *in.Role != entity.RoleAdministrator {
		if err := uc.ensureNotLastAdmin(ctx); err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	updated, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(updated), nil
}

// Delete elimina un usuario (incluido uno mismo) salvo que sea el único administrador.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if err := uc.require(ctx, actorID); err != nil {
		return err
	}
	target, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if target.Role == entity.RoleAdministrator {
		if err := uc.ensureNotLastAdmin(ctx); err != nil {
			return err
		}
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", id).Int64("actor_id", actorID).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) ensureNotLastAdmin(ctx context.Context) error {
	n, err := uc.repo.CountByRole(ctx, entity.RoleAdministrator)
	if err != nil {
		return err
	}
	if n <= 1 {
		return domain.ErrLastAdministrator
	}
	return nil
}

func (uc *UserUseCase) find(ctx context.Context, id int64) (*entity.User, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
