package validator_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/validator"
)

type sample struct {
	Name     string           `json:"name" validate:"notblank"`
	Price    decimal.Decimal  `json:"price" validate:"gt=0"`
	Cost     *decimal.Decimal `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Quantity int              `json:"quantity" validate:"gt=0"`
}

func TestValidateStruct_Valido(t *testing.T) {
	zero := decimal.Zero
	errs := validator.ValidateStruct(sample{Name: "Widget", Price: decimal.NewFromInt(10), Cost: &zero, Quantity: 1})
	assert.Empty(t, errs)
}

func TestValidateStruct_ReportaNombreJSON(t *testing.T) {
	errs := validator.ValidateStruct(sample{Name: "  ", Price: decimal.NewFromInt(10), Quantity: 1})
	require.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "notblank", errs[0].Tag)
}

func TestValidateStruct_DecimalNoPositivo(t *testing.T) {
	neg := decimal.NewFromInt(-1)
	errs := validator.ValidateStruct(sample{Name: "x", Price: decimal.Zero, Cost: &neg, Quantity: 0})
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"price", "cost", "quantity"}, fields)
}
