package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func (f *fixture) sell(t *testing.T, userID, productID int64, qty int) int64 {
	t.Helper()
	res, err := f.uc.RegisterSale(context.Background(), userID, dto.RegisterSaleRequest{
		Lines:       []dto.SaleLineRequest{{ProductID: productID, Quantity: qty}},
		PaymentType: entity.PaymentOther,
	})
	require.NoError(t, err)
	return res.SaleID
}

func (f *fixture) saleOn(t *testing.T, userID int64, date time.Time, customer string) {
	t.Helper()
	require.NoError(t, f.saleRepo.Create(context.Background(), &entity.Sale{
		Date: date, UserID: userID, CustomerName: customer, Total: dec("1.00"),
		PaymentType: entity.PaymentOther, Status: entity.SaleCompleted,
	}))
}

func TestListSales_AlcancePropioFuerzaElFiltro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.newEmployee(t, "caja2")
	p := f.product(t, "A", "1.00", 100)
	f.grant(t, f.employeeID, entity.PermViewOwnSalesHistory)

	f.sell(t, f.employeeID, p.ID, 1)
	f.sell(t, f.employeeID, p.ID, 1)
	f.sell(t, other, p.ID, 1)

	// Pide las ventas de otro usuario: se ignora y recibe solo las suyas
	res, err := f.uc.ListSales(ctx, f.employeeID, dto.SaleFilter{UserID: other})
	require.NoError(t, err)
	assert.Equal(t, sales.ScopeOwn, res.Scope)
	require.Len(t, res.Items, 2)
	for _, s := range res.Items {
		assert.Equal(t, f.employeeID, s.UserID)
	}
}

func TestListSales_AlcanceTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.newEmployee(t, "caja2")
	p := f.product(t, "A", "1.00", 100)
	f.sell(t, f.employeeID, p.ID, 1)
	f.sell(t, other, p.ID, 1)

	res, err := f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{})
	require.NoError(t, err)
	assert.Equal(t, sales.ScopeAll, res.Scope)
	assert.Len(t, res.Items, 2)

	res, err = f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{UserID: other})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "caja2", res.Items[0].Username)
}

func TestListSales_SinPermiso(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ListSales(context.Background(), f.employeeID, dto.SaleFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListSales_PaginadoMasRecientePrimero(t *testing.T) {
	f := newFixture(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		f.saleOn(t, f.employeeID, base.Add(time.Duration(i)*time.Hour), "")
	}

	res, err := f.uc.ListSales(context.Background(), f.adminID, dto.SaleFilter{PageRequest: dto.PageRequest{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Page.Total)
	assert.Equal(t, 3, res.Page.TotalPages)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].Date.After(res.Items[1].Date))
	assert.Equal(t, base.Add(2*time.Hour), res.Items[0].Date)
}

func TestListSales_FiltroPorFechaYCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.saleOn(t, f.employeeID, time.Date(2026, 3, 1, 23, 59, 0, 0, time.Local), "Ana Pérez")
	f.saleOn(t, f.employeeID, time.Date(2026, 3, 2, 0, 1, 0, 0, time.Local), "Luis")
	f.saleOn(t, f.employeeID, time.Date(2026, 3, 3, 12, 0, 0, 0, time.Local), "ana maría")

	res, err := f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{From: "2026-03-01", To: "2026-03-01"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1, "las fechas se comparan por día calendario")

	res, err = f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{From: "2026-03-02"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{Customer: "ANA"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	_, err = f.uc.ListSales(ctx, f.adminID, dto.SaleFilter{From: "01/03/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSale_Propia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := f.newEmployee(t, "caja2")
	p := f.product(t, "Widget", "3.00", 10)
	f.grant(t, f.employeeID, entity.PermViewOwnSalesHistory)

	mine := f.sell(t, f.employeeID, p.ID, 2)
	theirs := f.sell(t, other, p.ID, 1)

	got, err := f.uc.GetSale(ctx, f.employeeID, mine)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Widget", got.Lines[0].ProductName)
	assert.True(t, dec("6.00").Equal(got.Total))

	_, err = f.uc.GetSale(ctx, f.employeeID, theirs)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.GetSale(ctx, f.adminID, theirs)
	assert.NoError(t, err)

	_, err = f.uc.GetSale(ctx, f.adminID, 999)
	assert.ErrorIs(t, err, domain.ErrSaleNotFound)
}
