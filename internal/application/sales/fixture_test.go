package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/authz"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/setup"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type fixture struct {
	store      *memory.Store
	users      *memory.UserRepo
	products   *memory.ProductRepo
	saleRepo   *memory.SaleRepo
	resolver   *authz.Resolver
	engine     *sales.Engine
	uc         *sales.SaleUseCase
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

	f := &fixture{
		store:    store,
		users:    users,
		products: memory.NewProductRepository(store),
		saleRepo: memory.NewSaleRepository(store),
		resolver: authz.NewResolver(users, perms, log),
		adminID:  admin.ID,
	}
	f.employeeID = f.newEmployee(t, "caja1")
	f.engine = sales.NewEngine(memory.NewTxRunner(store), log)
	f.uc = sales.NewSaleUseCase(f.engine, f.products, f.saleRepo, f.resolver, 25, log)
	return f
}

func (f *fixture) newEmployee(t *testing.T, username string) int64 {
	t.Helper()
	u := &entity.User{Username: username, PasswordHash: "x", Role: entity.RoleEmployee}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

func (f *fixture) grant(t *testing.T, userID int64, name string) {
	t.Helper()
	require.NoError(t, f.resolver.GrantOrRevoke(context.Background(), f.adminID, userID, name, true))
}

func (f *fixture) product(t *testing.T, name, price string, stock int) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:        name,
		RetailPrice: decimal.RequireFromString(price),
		Stock:       stock,
		UnitMeasure: "unit",
		Active:      true,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) stockOf(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
