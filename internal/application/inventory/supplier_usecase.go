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

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	authz permissionChecker
	log   *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, authz permissionChecker, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, authz: authz, log: log.Component("suppliers")}
}

func (uc *SupplierUseCase) canWrite(ctx context.Context, actorID int64) bool {
	return uc.authz.HasAny(ctx, actorID, entity.PermManageSuppliers, entity.PermManageInventory)
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, actorID int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Name == nil {
		return nil, domain.Invalid("name", "requerido")
	}
	if !uc.canWrite(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	s := &entity.Supplier{Name: strings.TrimSpace(*in.Name)}
	if in.Contact != nil {
		s.Contact = *in.Contact
	}
	if in.Phone != nil {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, actorID int64) ([]dto.SupplierResponse, error) {
	if !uc.authz.HasAny(ctx, actorID, entity.PermViewInventory, entity.PermManageInventory, entity.PermManageSuppliers) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// Update modifica los campos presentes.
func (uc *SupplierUseCase) Update(ctx context.Context, actorID, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !uc.canWrite(ctx, actorID) {
		return nil, domain.ErrForbidden
	}
	patch := entity.SupplierPatch{
		Name:    trimmed(in.Name),
		Contact: in.Contact,
		Phone:   trimmed(in.Phone),
		Email:   trimmed(in.Email),
		Address: in.Address,
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// Delete borra el proveedor; sus productos quedan sin proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, actorID, id int64) error {
	if !uc.canWrite(ctx, actorID) {
		return domain.ErrForbidden
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Int64("supplier_id", id).Int64("actor_id", actorID).Msg("proveedor eliminado")
	return nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Contact: s.Contact,
		Phone:   s.Phone,
		Email:   s.Email,
		Address: s.Address,
	}
}
