package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

const CurrencySymbol = "₹"

// FormatCurrency рендерит сумму в рупиях с индийской группировкой разрядов
// (12,34,567) и не более чем тремя знаками после точки.
// Отрицательные суммы: "-₹1,215".
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	s := amount.Round(3).String()
	intPart, frac, hasFrac := strings.Cut(s, ".")

	out := sign + CurrencySymbol + groupIndian(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out
}

// FormatRupees: то же для целых сумм.
func FormatRupees(amount int64) string {
	return FormatCurrency(decimal.NewFromInt(amount))
}

// groupIndian: последние три цифры, дальше группы по две.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
