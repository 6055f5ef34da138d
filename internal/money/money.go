// Package money handles currency amounts as integer paise, converting to and
// from en-IN display strings only at the boundary.
package money

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Format renders an amount of paise with Indian digit grouping. Whole-rupee
// amounts carry no decimal places; fractional amounts always show two.
func Format(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}

	rupees := paise / 100
	fraction := paise % 100

	s := groupIndian(rupees)
	if fraction != 0 {
		s = fmt.Sprintf("%s.%02d", s, fraction)
	}
	if negative {
		s = "-" + s
	}
	return s
}

// Parse converts a display string back to paise. Every rune except digits and
// the decimal point is stripped first, so grouped input like "15,000" or
// "₹1,500.50" parses cleanly. A minus sign is stripped along with the rest,
// so Parse(Format(x)) == x holds for non-negative amounts only. Malformed
// input yields 0.
func Parse(s string) int64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).IntPart()
}

// FormatDate converts a stored YYYY-MM-DD date to DD/MM/YYYY for display.
// Anything that does not parse is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

// groupIndian inserts en-IN thousands separators: the last three digits form
// one group, everything above that is grouped in twos (12,34,567).
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(append(groups, tail), ",")
}
