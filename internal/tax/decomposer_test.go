package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/money"
	"storefront/internal/tax"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNew_RejectsNegativeRate(t *testing.T) {
	_, err := tax.New(dec("-0.01"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeTaxRate)
}

func TestNew_ZeroRate(t *testing.T) {
	d, err := tax.New(decimal.Zero)
	require.NoError(t, err)

	excl, perUnit := d.Split(dec("499"))
	assert.True(t, dec("499").Equal(excl))
	assert.True(t, perUnit.IsZero())
}

func TestLine_ExampleOrder(t *testing.T) {
	d, err := tax.New(dec("0.18"))
	require.NoError(t, err)

	tests := []struct {
		name      string
		price     string
		qty       int
		lineTotal string
		lineTax   string
		excl      string
	}{
		{"saree_x2", "590", 2, "1180.00", "180.00", "500.00"},
		{"kurta_x1", "1000", 1, "1000.00", "152.54", "847.46"},
		{"zero_price", "0", 3, "0.00", "0.00", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := d.Line(domain.NormalizedItem{Name: tt.name, UnitPrice: dec(tt.price), Quantity: tt.qty})
			assert.Equal(t, tt.lineTotal, money.Fixed(line.LineTotalInclTax))
			assert.Equal(t, tt.lineTax, money.Fixed(line.LineTaxTotal))
			assert.Equal(t, tt.excl, money.Fixed(line.UnitPriceExclTax))
			assert.Equal(t, tt.qty, line.Quantity)
		})
	}
}

func TestLine_Invariants(t *testing.T) {
	d, err := tax.New(dec("0.18"))
	require.NoError(t, err)

	for _, price := range []string{"1", "0.99", "333.33", "12999", "7.5"} {
		for _, qty := range []int{1, 2, 7} {
			line := d.Line(domain.NormalizedItem{UnitPrice: dec(price), Quantity: qty})
			q := decimal.NewFromInt(int64(qty))

			assert.True(t, line.LineTotalInclTax.Equal(line.UnitPriceInclTax.Mul(q)))
			assert.True(t, line.LineTaxTotal.Equal(line.TaxPerUnit.Mul(q)))
			assert.True(t, line.UnitPriceExclTax.Add(line.TaxPerUnit).Equal(line.UnitPriceInclTax))
			assert.False(t, line.TaxPerUnit.IsNegative())
		}
	}
}

func TestLine_ClampsQuantity(t *testing.T) {
	d, err := tax.New(dec("0.18"))
	require.NoError(t, err)

	line := d.Line(domain.NormalizedItem{UnitPrice: dec("118"), Quantity: 0})
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "118.00", money.Fixed(line.LineTotalInclTax))
}

func TestLines_PreservesOrder(t *testing.T) {
	d, err := tax.New(dec("0.05"))
	require.NoError(t, err)

	lines := d.Lines([]domain.NormalizedItem{{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}})
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].Name)
	assert.Equal(t, "b", lines[1].Name)
	assert.True(t, dec("0.05").Equal(d.Rate()))
}
