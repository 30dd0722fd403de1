package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, id int64, patch entity.UserPatch) error
	Delete(ctx context.Context, id int64) error
	CountByRole(ctx context.Context, role string) (int, error)
}
