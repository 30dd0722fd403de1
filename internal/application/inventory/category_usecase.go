package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	authz permissionChecker
	log   *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, authz permissionChecker, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, authz: authz, log: log.Component("categories")}
}

func (uc *CategoryUseCase) canWrite(ctx context.Context, actorID int64) bool {
	return uc.authz.HasAny(ctx, actorID, entity.PermManageCategories, entity.PermManageInventory)
}

// Create crea una categoría. El nombre es obligatorio y único.
func (uc *CategoryUseCase) Create(ctx context.Context, actorID int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Name == nil {
		return nil, domain.Invalid("name", "requerido")
	}
	if !uc.canWrite(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	c := &entity.Category{Name: strings.TrimSpace(*in.Name)}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, actorID int64) ([]dto.CategoryResponse, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermViewInventory, entity.PermManageInventory,
		entity.PermManageCategories, entity.PermMakeSales) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update modifica los campos presentes.
func (uc *CategoryUseCase) Update(ctx context.Context, actorID, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.canWrite(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo.Update(ctx, id, entity.CategoryPatch{Name: trimmed(in.Name), Description: in.Description}); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(c), nil
}

// Delete borra la categoría; sus productos quedan sin categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if !uc.canWrite(ctx, actorID) {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("category_id", id).Int64("actor_id", actorID).Msg("categoría eliminada")
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}
