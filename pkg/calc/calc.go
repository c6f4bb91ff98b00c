package calc

import (
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Discount types understood by the pricing functions. Any other value leaves
// the MRP untouched.
const (
	DiscountPercent = "percent"
	DiscountAmount  = "amount"
)

var (
	phoneRegex      = regexp.MustCompile(`^[6-9]\d{9}$`)
	whitespaceRegex = regexp.MustCompile(`\s`)
	inrPrinter      = message.NewPrinter(language.MustParse("en-IN"))
)

// num collapses NaN to zero so that blank form inputs never propagate NaN
// through the arithmetic.
func num(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// PricePerPiece computes the unit price after discount.
//
// A percent discount above 100 yields a negative price. That mirrors the
// behaviour the showroom currently relies on, so it is deliberately not
// clamped here; an amount discount is floored at zero.
func PricePerPiece(mrp float64, discountType string, discountValue float64) float64 {
	mrp = num(mrp)
	discountValue = num(discountValue)

	if mrp == 0 || discountValue == 0 {
		return mrp
	}

	switch discountType {
	case DiscountPercent:
		return mrp - mrp*discountValue/100
	case DiscountAmount:
		return math.Max(0, mrp-discountValue)
	}

	return mrp
}

// LineTotal computes the total for a quantity of pieces.
func LineTotal(pricePerPiece, quantity float64) float64 {
	return num(pricePerPiece) * num(quantity)
}

// Item carries the canonical pricing inputs of one line item. Derived values
// are always recomputed from these, never trusted from storage.
type Item struct {
	MRP           float64
	DiscountType  string
	DiscountValue float64
	Quantity      float64
}

// GrandTotal sums the line totals of all items. An empty slice yields 0.
func GrandTotal(items []Item) float64 {
	var total float64
	for _, it := range items {
		total += LineTotal(PricePerPiece(it.MRP, it.DiscountType, it.DiscountValue), it.Quantity)
	}
	return total
}

// FormatCurrency renders an amount as Indian Rupees with lakh/crore digit
// grouping and at most two fraction digits, e.g. ₹1,36,975.
func FormatCurrency(amount float64) string {
	return inrPrinter.Sprintf("₹%v", number.Decimal(num(amount),
		number.MinFractionDigits(0),
		number.MaxFractionDigits(2),
	))
}

// ValidatePhoneNumber reports whether phone, after stripping whitespace, is a
// 10-digit Indian mobile number starting with 6-9.
func ValidatePhoneNumber(phone string) bool {
	return phoneRegex.MatchString(whitespaceRegex.ReplaceAllString(phone, ""))
}

// GenerateID produces a session-unique token for keying line items in a local
// draft: millisecond timestamp plus a random suffix, both base36. It makes no
// uniqueness promise beyond single-session collision avoidance.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63(), 36)
}

// DiscountPercentage converts an absolute discount amount into a percentage
// of the MRP. Returns 0 when either input is zero or absent.
func DiscountPercentage(mrp, discountAmount float64) float64 {
	mrp = num(mrp)
	discountAmount = num(discountAmount)
	if mrp == 0 || discountAmount == 0 {
		return 0
	}
	return discountAmount / mrp * 100
}

// Savings is the amount saved against the MRP, floored at zero.
func Savings(mrp, finalPrice float64) float64 {
	return math.Max(0, num(mrp)-num(finalPrice))
}
