package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestAdjustStock_EntradaYSalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Widget", "10.00", 50)

	stock, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 5, Direction: inventory.DirectionEntry,
	})
	require.NoError(t, err)
	assert.Equal(t, 55, stock)

	stock, err = f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 3, Direction: inventory.DirectionExit, Note: "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, 52, stock)

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 52, stored.Stock)

	movs, total, err := f.movements.ListByProduct(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total, "stock inicial + entrada + salida")
	assert.Equal(t, entity.MovementExit, movs[0].Type)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, 52, movs[0].StockAfter)
	assert.Equal(t, "MANUAL ADJUSTMENT: merma", movs[0].Note)
	assert.Equal(t, entity.MovementEntry, movs[1].Type)
}

func TestAdjustStock_CantidadNoPositiva(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Widget", "10.00", 50)
	before := f.store.Counts().Movements

	for _, qty := range []int{0, -4} {
		_, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
			ActorID: f.adminID, ProductID: p.ID, Quantity: qty, Direction: inventory.DirectionEntry,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Equal(t, before, f.store.Counts().Movements)
}

func TestAdjustStock_SalidaMayorQueStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Widget", "10.00", 2)

	_, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 3, Direction: inventory.DirectionExit, Note: "rotura",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, p.ID, se.ProductID)
	assert.Equal(t, 2, se.Available)

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
	_, total, err := f.movements.ListByProduct(ctx, p.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total, "solo el movimiento de stock inicial")
}

func TestAdjustStock_SalidaSinNota(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Widget", "10.00", 5)

	_, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 1, Direction: inventory.DirectionExit, Note: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_DireccionDesconocida(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Widget", "10.00", 5)

	_, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 1, Direction: "sideways",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_SinPermiso(t *testing.T) {
	f := newFixture(t)
	p := f.createProduct(t, "Widget", "10.00", 5)

	_, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ActorID: f.employeeID, ProductID: p.ID, Quantity: 1, Direction: inventory.DirectionEntry,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.grant(t, f.employeeID, entity.PermAdjustStock)
	stock, err := f.ledger.AdjustStock(context.Background(), inventory.AdjustStockInput{
		ActorID: f.employeeID, ProductID: p.ID, Quantity: 1, Direction: inventory.DirectionEntry,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, stock)
}

func TestAdjustStock_ProductoInactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Widget", "10.00", 5)
	require.NoError(t, f.catalog.Deactivate(ctx, f.adminID, p.ID))

	_, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 1, Direction: inventory.DirectionEntry,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: 999, Quantity: 1, Direction: inventory.DirectionEntry,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestAdjustStock_FalloAlRegistrarMovimientoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Widget", "10.00", 5)

	boom := errors.New("disk full")
	f.store.FailOn("movements.create", boom)
	_, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
		ActorID: f.adminID, ProductID: p.ID, Quantity: 4, Direction: inventory.DirectionEntry,
	})
	assert.ErrorIs(t, err, boom)

	stored, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock, "el incremento se revierte con la tx")
}

func TestListMovements_Paginado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProduct(t, "Widget", "10.00", 1)
	for i := 0; i < 4; i++ {
		_, err := f.ledger.AdjustStock(ctx, inventory.AdjustStockInput{
			ActorID: f.adminID, ProductID: p.ID, Quantity: 1, Direction: inventory.DirectionEntry,
		})
		require.NoError(t, err)
	}

	res, err := f.ledger.ListMovements(ctx, f.adminID, p.ID, dto.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 5, res.Page.Total)
	assert.Equal(t, 3, res.Page.TotalPages)

	_, err = f.ledger.ListMovements(ctx, f.employeeID, p.ID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
