package lineitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmountZeroQuantity(t *testing.T) {
	for _, v := range AllVariants() {
		for _, price := range []string{"$0.00", "$8.00", "$1,999.99", "garbage", ""} {
			it := &LineItem{UnitPrice: price, UnitPer: "3"}
			assert.Equal(t, "$0.00", FormatMoney(ComputeAmount(it, v)), "%s price %q", v, price)
		}
	}
}

func TestComputeAmountStandard(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want string
	}{
		{"no divisor", LineItem{Quantity: "3", UnitPrice: "$8.00", UnitPer: "0"}, "$24.00"},
		{"empty divisor", LineItem{Quantity: "3", UnitPrice: "$8.00"}, "$24.00"},
		{"divisor", LineItem{Quantity: "1", UnitPrice: "$8.00", UnitPer: "4"}, "$2.00"},
		{"divisor scales total", LineItem{Quantity: "10", UnitPrice: "$8.00", UnitPer: "4"}, "$20.00"},
		{"negative divisor ignored", LineItem{Quantity: "2", UnitPrice: "$5.00", UnitPer: "-2"}, "$10.00"},
		{"thousands separator", LineItem{Quantity: "2", UnitPrice: "$1,250.50"}, "$2501.00"},
		{"leading integer", LineItem{Quantity: "12 boxes", UnitPrice: "$1"}, "$12.00"},
		{"decimal quantity truncates", LineItem{Quantity: "2.9", UnitPrice: "$1"}, "$2.00"},
		{"rounding", LineItem{Quantity: "1", UnitPrice: "$10.00", UnitPer: "3"}, "$3.33"},
		{"unparsable quantity", LineItem{Quantity: "lots", UnitPrice: "$10.00"}, "$0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(ComputeAmount(&tt.item, Standard)))
		})
	}
}

func TestComputeAmountApparel(t *testing.T) {
	it := &LineItem{UnitPrice: "$5.00"}
	it.Sizes[SizeXS] = "2"
	it.Sizes[SizeS] = "3"
	assert.Equal(t, "$25.00", FormatMoney(ComputeAmount(it, Apparel)))

	for s := SizeXS; s < sizeCount; s++ {
		it.Sizes[s] = "1"
	}
	it.Sizes[SizeOther] = "x"
	it.UnitPer = "4" // ignored for apparel
	assert.Equal(t, "$40.00", FormatMoney(ComputeAmount(it, Apparel)))
	assert.EqualValues(t, 8, TotalQuantity(it, Apparel))
}

func TestParseMoney(t *testing.T) {
	assert.Equal(t, "12.5", ParseMoney("$12.50").String())
	assert.Equal(t, "1000", ParseMoney("$1,000").String())
	assert.Equal(t, "0", ParseMoney("").String())
	assert.Equal(t, "3", ParseMoney("3.").String())
	assert.Equal(t, "0.5", ParseMoney(".5").String())
}

func TestFormatMoneyNegative(t *testing.T) {
	assert.Equal(t, "$-1.50", FormatMoney(ParseMoney("-1.5")))

	it := &LineItem{UnitPrice: "$5.00"}
	require.NoError(t, it.Set(FieldQuantityXS, "-1"))
	assert.Equal(t, "$-5.00", FormatMoney(ComputeAmount(it, Apparel)))
}

func TestAffectsAmount(t *testing.T) {
	for _, f := range []Field{FieldQuantity, FieldQuantityXS, FieldQuantityOther, FieldUnitPrice, FieldUnitPer} {
		assert.True(t, AffectsAmount(f), f)
	}
	for _, f := range []Field{FieldDescription, FieldOrder, FieldStatus, FieldDepartment} {
		assert.False(t, AffectsAmount(f), f)
	}
}
