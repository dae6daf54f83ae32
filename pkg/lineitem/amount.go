package lineitem

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)
)

// parseLeadingInt reads the integer prefix of s, ignoring leading space and
// anything after the digits. Strings without a prefix read as 0.
func parseLeadingInt(s string) int64 {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseLeadingDecimal is parseLeadingInt for decimal numbers.
func parseLeadingDecimal(s string) decimal.Decimal {
	m := leadingDecimal.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m, "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity reads a quantity cell, defaulting to 0.
func ParseQuantity(s string) int64 {
	return parseLeadingInt(s)
}

// ParseMoney reads a currency cell such as "$1,250.50", defaulting to 0.
func ParseMoney(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return parseLeadingDecimal(s)
}

// FormatMoney renders an amount with a dollar prefix and two decimals. The
// sign follows the prefix, so -5 is "$-5.00".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// TotalQuantity sums the quantities that count toward the amount.
func TotalQuantity(it *LineItem, v Variant) int64 {
	var total int64
	for _, f := range v.QuantityFields() {
		total += parseLeadingInt(it.Get(f))
	}
	return total
}

// EffectivePrice is the per-unit price used for the amount. Standard items
// divide the unit price by unitPer when it is positive.
func EffectivePrice(it *LineItem, v Variant) decimal.Decimal {
	price := ParseMoney(it.UnitPrice)
	switch v {
	case Standard:
		if per := parseLeadingDecimal(it.UnitPer); per.IsPositive() {
			return price.Div(per)
		}
		return price
	case Apparel:
		return price
	default:
		return price
	}
}

// ComputeAmount returns total quantity times effective price, rounded to
// cents. It never fails: unparsable input counts as zero.
func ComputeAmount(it *LineItem, v Variant) decimal.Decimal {
	if it == nil {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(TotalQuantity(it, v))
	return qty.Mul(EffectivePrice(it, v)).Round(2)
}

// Recompute refreshes the stored amount from the other fields.
func Recompute(it *LineItem, v Variant) {
	if it == nil {
		return
	}
	it.Amount = FormatMoney(ComputeAmount(it, v))
}
