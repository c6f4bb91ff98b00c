package enum

// DiscountType selects how a line item's discount value is interpreted.
type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeAmount  DiscountType = "amount"
)

func (d DiscountType) String() string {
	return string(d)
}

// Valid reports whether d is a known discount type.
func (d DiscountType) Valid() bool {
	return d == DiscountTypePercent || d == DiscountTypeAmount
}
