// Package auth login, recuperación de contraseña por preguntas de seguridad y cambios de credenciales propias.
package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/jwt"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// permissionResolver lo implementa *authz.Resolver.
type permissionResolver interface {
	EffectivePermissions(ctx context.Context, userID int64) (entity.PermissionSet, error)
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	authz    permissionResolver
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, authz permissionResolver, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, authz: authz, jwtCfg: jwtCfg, log: log.Component("auth")}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario + permisos efectivos.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, in.Password) {
		uc.log.Warn().Str("username", in.Username).Msg("login fallido")
		return nil, domain.ErrUnauthorized
	}
	perms, err := uc.authz.EffectivePermissions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{
		Token:       token,
		User:        *ToUserResponse(user),
		Permissions: perms.Sorted(),
	}, nil
}

// SecurityQuestions devuelve las dos preguntas del usuario (nunca las respuestas).
// Usuario inexistente o sin preguntas configuradas → ErrNotFound.
func (uc *AuthUseCase) SecurityQuestions(ctx context.Context, in dto.RecoveryQuestionsRequest) (*dto.RecoveryQuestionsResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasSecurityQuestions() {
		return nil, domain.ErrNotFound
	}
	return &dto.RecoveryQuestionsResponse{
		Username:  user.Username,
		Question1: user.SecurityQuestion1,
		Question2: user.SecurityQuestion2,
	}, nil
}

// ResetPasswordWithAnswers restablece la contraseña si ambas respuestas coinciden.
func (uc *AuthUseCase) ResetPasswordWithAnswers(ctx context.Context, in dto.ResetPasswordRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return err
	}
	if user == nil || !user.HasSecurityQuestions() {
		return domain.ErrUnauthorized
	}
	if !CheckAnswer(user.SecurityAnswer1Hash, in.Answer1) || !CheckAnswer(user.SecurityAnswer2Hash, in.Answer2) {
		uc.log.Warn().Int64("user_id", user.ID).Msg("respuestas de seguridad incorrectas")
		return domain.ErrUnauthorized
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	if err := uc.userRepo.Update(ctx, user.ID, entity.UserPatch{PasswordHash: &hash}); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("contraseña restablecida por preguntas de seguridad")
	return nil
}

// ChangeOwnPassword cambia la contraseña del usuario autenticado verificando la actual.
func (uc *AuthUseCase) ChangeOwnPassword(ctx context.Context, userID int64, in dto.ChangePasswordRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	user, err := uc.verify(ctx, userID, in.CurrentPassword)
	if err != nil {
		return err
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.userRepo.Update(ctx, user.ID, entity.UserPatch{PasswordHash: &hash})
}

// UpdateOwnSecurityQuestions reemplaza ambas preguntas y respuestas del usuario autenticado.
func (uc *AuthUseCase) UpdateOwnSecurityQuestions(ctx context.Context, userID int64, in dto.SecurityQuestionsRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	user, err := uc.verify(ctx, userID, in.CurrentPassword)
	if err != nil {
		return err
	}
	a1, err := HashAnswer(in.Answer1)
	if err != nil {
		return err
	}
	a2, err := HashAnswer(in.Answer2)
	if err != nil {
		return err
	}
	q1, q2 := strings.TrimSpace(in.Question1), strings.TrimSpace(in.Question2)
	return uc.userRepo.Update(ctx, user.ID, entity.UserPatch{
		SecurityQuestion1:   &q1,
		SecurityAnswer1Hash: &a1,
		SecurityQuestion2:   &q2,
		SecurityAnswer2Hash: &a2,
	})
}

func (uc *AuthUseCase) verify(ctx context.Context, userID int64, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ToUserResponse convierte la entidad a DTO (sin hashes).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Role:                 u.Role,
		HasSecurityQuestions: u.HasSecurityQuestions(),
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}
