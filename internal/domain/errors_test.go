package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestStockError_EsInsuficiente(t *testing.T) {
	err := fmt.Errorf("registrar venta: %w", &domain.StockError{ProductID: 9, Requested: 3, Available: 2})

	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var se *domain.StockError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, int64(9), se.ProductID)
	assert.Contains(t, err.Error(), "disponible 2")
}

func TestStockError_DisponibleDesconocido(t *testing.T) {
	err := &domain.StockError{ProductID: 1, Requested: 5, Available: -1}
	assert.NotContains(t, err.Error(), "disponible")
}

func TestValidationError_EsEntradaInvalida(t *testing.T) {
	err := domain.Invalid("quantity", "debe ser mayor que cero")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "quantity")
}
