package partials

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/shopspring/decimal"
)

// separators returns the thousands and decimal separators for the request locale
func separators(ctx context.Context) (string, string) {
	if i18n.GetLocale(ctx) == i18n.LangEN {
		return ",", "."
	}
	return ".", ","
}

// groupThousands inserts sep every three digits of an unsigned integer string
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatCurrency renders an amount in reais, e.g. "R$ 1.234,50" (pt) or "R$ 1,234.50" (en)
func FormatCurrency(ctx context.Context, amount decimal.Decimal) string {
	thousands, dec := separators(ctx)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(intPart, thousands) + dec + frac
}

// FormatCount renders an integer counter with thousands separators
func FormatCount(ctx context.Context, n int64) string {
	thousands, _ := separators(ctx)
	if n < 0 {
		return "-" + groupThousands(strconv.FormatInt(-n, 10), thousands)
	}
	return groupThousands(strconv.FormatInt(n, 10), thousands)
}

// FormatDate renders a timestamp in the local convention of the request locale
func FormatDate(ctx context.Context, t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	if i18n.GetLocale(ctx) == i18n.LangEN {
		return t.Format("Jan 2, 2006 15:04")
	}
	return t.Format("02/01/2006 15:04")
}
