package invoiceform

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Totals holds the amounts derived from an invoice. Values are unrounded;
// use [FormatMoney] for display.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals derives subtotal, tax and total from inv.
func ComputeTotals(inv Invoice) Totals {
	var subtotal float64
	for _, it := range inv.Items {
		subtotal += finite(it.Quantity) * finite(it.Price)
	}
	tax := subtotal * (finite(inv.TaxRate) / 100)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// ParseNumber converts user input to a number. Blank, malformed and
// non-finite input yields 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// FormatMoney renders v with exactly two decimal places, the way a
// browser's Number.prototype.toFixed(2) does: rounding applies to the
// exact binary value of v, so 1.005 (stored as 1.00499...) renders as
// "1.00", and exact ties round away from zero. Negative values that round
// to zero keep their sign.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		// decimal cannot represent these; overflowed sums land here.
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	if math.Abs(v) >= 1e21 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := exactDecimal(v).StringFixed(2)
	if v < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

// exactDecimal returns the decimal that equals v bit for bit.
// v = mant * 2^exp with an integer mant, and for negative exp
// mant * 2^exp = mant * 5^-exp * 10^exp.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	pow := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow), int32(exp))
}

// FormatRate renders a tax rate percentage in its shortest form.
func FormatRate(v float64) string {
	return strconv.FormatFloat(finite(v), 'f', -1, 64)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
