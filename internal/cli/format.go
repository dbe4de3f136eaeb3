// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/spendfold/internal/model"
)

// FormatAmount renders an amount with two decimals and thousands separators.
// e.g., 1234.5 -> "1,234.50"
func FormatAmount(d decimal.Decimal) string {
	neg := d.IsNegative()
	fixed := d.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := decimal.NewFromString(whole)
	if err != nil || !n.IsInteger() {
		return fixed
	}
	out := humanize.Comma(n.IntPart()) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatMoney prefixes FormatAmount with a currency symbol.
func FormatMoney(symbol string, d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + symbol + FormatAmount(d.Neg())
	}
	return symbol + FormatAmount(d)
}

// FormatCompactMoney renders large amounts with SI suffixes for chart axes.
// e.g., 1500 -> "₹1.5k"
func FormatCompactMoney(symbol string, v float64) string {
	if v < 1000 {
		return fmt.Sprintf("%s%.0f", symbol, v)
	}
	value, prefix := humanize.ComputeSI(v)
	return fmt.Sprintf("%s%.1f%s", symbol, value, prefix)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatDate renders a calendar date for tables, e.g. "Oct 01, 2026".
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("Jan 02, 2006")
}

// FormatAgo renders a timestamp relative to now, e.g. "3 minutes ago".
func FormatAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatShare returns part as a fraction of whole, 0 when whole is zero.
func FormatShare(part, whole decimal.Decimal) string {
	if whole.IsZero() {
		return FormatPercent(0)
	}
	return FormatPercent(part.Div(whole).InexactFloat64())
}

// Plural picks the singular or plural noun for n, e.g. "1 folder", "3 folders".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return humanize.Comma(int64(n)) + " " + plural
}

// Truncate shortens s to max display cells, adding an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
