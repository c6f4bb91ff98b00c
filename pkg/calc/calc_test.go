package calc

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricePerPiece_AmountDiscount(t *testing.T) {
	assert.Equal(t, 1800.0, PricePerPiece(2000, DiscountAmount, 200))
	// amount discounts are floored at zero
	assert.Equal(t, 0.0, PricePerPiece(100, DiscountAmount, 250))
}

func TestPricePerPiece_PercentDiscount(t *testing.T) {
	assert.Equal(t, 90.0, PricePerPiece(100, DiscountPercent, 10))
	// over-100% discounts go negative on purpose; current showroom behaviour
	assert.Equal(t, -50.0, PricePerPiece(100, DiscountPercent, 150))
}

func TestPricePerPiece_ZeroAndMissingInputs(t *testing.T) {
	assert.Equal(t, 0.0, PricePerPiece(0, DiscountPercent, 10))
	assert.Equal(t, 500.0, PricePerPiece(500, DiscountPercent, 0))
	assert.Equal(t, 500.0, PricePerPiece(500, "bogus", 50))
	// NaN inputs behave like blanks, never poison the result
	assert.Equal(t, 0.0, PricePerPiece(math.NaN(), DiscountAmount, 10))
	assert.Equal(t, 500.0, PricePerPiece(500, DiscountAmount, math.NaN()))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 40500.0, LineTotal(PricePerPiece(45000, DiscountPercent, 10), 1))
	assert.Equal(t, 0.0, LineTotal(100, 0))
	assert.Equal(t, 0.0, LineTotal(math.NaN(), 5))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 0.0, GrandTotal(nil))

	items := []Item{
		{MRP: 2000, DiscountType: DiscountAmount, DiscountValue: 200, Quantity: 1},
		{MRP: 100, DiscountType: DiscountAmount, DiscountValue: 5, Quantity: 5},
		{MRP: 45000, DiscountType: DiscountPercent, DiscountValue: 10, Quantity: 1},
	}

	var want float64
	for _, it := range items {
		want += LineTotal(PricePerPiece(it.MRP, it.DiscountType, it.DiscountValue), it.Quantity)
	}
	assert.Equal(t, want, GrandTotal(items))
	assert.Equal(t, 1800.0+475.0+40500.0, GrandTotal(items))
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(136975)
	assert.True(t, strings.HasPrefix(got, "₹"), got)
	// Indian grouping: lakh separator after the first three digits
	assert.Contains(t, got, "1,36,975")

	assert.Contains(t, FormatCurrency(math.NaN()), "0")
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("9876543210"))
	assert.True(t, ValidatePhoneNumber("98765 43210"))
	assert.False(t, ValidatePhoneNumber("1234567890"))
	assert.False(t, ValidatePhoneNumber("98765432"))
	assert.False(t, ValidatePhoneNumber(""))
	assert.False(t, ValidatePhoneNumber("98765432101"))
}

func TestGenerateID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestDiscountPercentageAndSavings(t *testing.T) {
	assert.Equal(t, 10.0, DiscountPercentage(2000, 200))
	assert.Equal(t, 0.0, DiscountPercentage(0, 200))
	assert.Equal(t, 0.0, DiscountPercentage(2000, 0))

	assert.Equal(t, 200.0, Savings(2000, 1800))
	assert.Equal(t, 0.0, Savings(1800, 2000))
}
