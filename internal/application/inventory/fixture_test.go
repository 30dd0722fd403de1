package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type fixture struct {
	store      *memory.Store
	products   *memory.ProductRepo
	movements  *memory.StockMovementRepo
	perms      *memory.PermissionRepo
	resolver   *authz.Resolver
	ledger     *inventory.StockLedger
	catalog    *inventory.ProductUseCase
	categories *inventory.CategoryUseCase
	suppliers  *inventory.SupplierUseCase
	adminID    int64
	employeeID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	perms := memory.NewPermissionRepository(store)
	require.NoError(t, setup.NewSeeder(users, perms, log).Seed(ctx, setup.AdminAccount{Username: "admin", Password: "admin"}))

	admin, err := users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	emp := &entity.User{Username: "caja1", PasswordHash: "x", Role: entity.RoleEmployee}
	require.NoError(t, users.Create(ctx, emp))

	f := &fixture{
		store:      store,
		products:   memory.NewProductRepository(store),
		movements:  memory.NewStockMovementRepository(store),
		perms:      perms,
		resolver:   authz.NewResolver(users, perms, log),
		adminID:    admin.ID,
		employeeID: emp.ID,
	}
	tx := memory.NewTxRunner(store)
	categories := memory.NewCategoryRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	f.ledger = inventory.NewStockLedger(tx, f.movements, f.products, f.resolver, log)
	f.catalog = inventory.NewProductUseCase(tx, f.products, categories, suppliers, f.resolver, log)
	f.categories = inventory.NewCategoryUseCase(categories, f.resolver, log)
	f.suppliers = inventory.NewSupplierUseCase(suppliers, f.resolver, log)
	return f
}

// grant da un permiso a un usuario mediante override.
func (f *fixture) grant(t *testing.T, userID int64, name string) {
	t.Helper()
	require.NoError(t, f.resolver.GrantOrRevoke(context.Background(), f.adminID, userID, name, true))
}

func (f *fixture) createProduct(t *testing.T, name string, price string, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := f.catalog.Create(context.Background(), f.adminID, dto.CreateProductRequest{
		Name:        name,
		RetailPrice: decimal.RequireFromString(price),
		Stock:       stock,
	})
	require.NoError(t, err)
	return p
}
