// Package render turns databases, snapshots and comparisons into terminal
// output. Nothing below this layer knows about color or table markup.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// placeholder stands in for absent values in rendered output.
const placeholder = "-"

// monthAbbrevs is the fixed table for short-form dates.
var monthAbbrevs = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Number renders a value with thousands separators, rounded to the nearest
// integer.
func Number(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}

// Decimal renders a value with thousands separators and one decimal place.
func Decimal(v float64) string {
	return humanize.CommafWithDigits(v, 1)
}

// Duration renders combat time: "45.2s" under a minute, "2m 5.0s" at or
// over it.
func Duration(seconds float64) string {
	if seconds <= 0 {
		return placeholder
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	m := int(seconds) / 60
	return fmt.Sprintf("%dm %.1fs", m, seconds-float64(m*60))
}

// ShortDate renders a canonical YYYY-MM-DD date as Mon-DD.
func ShortDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return placeholder
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return placeholder
	}
	return monthAbbrevs[m-1] + "-" + parts[2]
}

// Percent renders a signed percentage change.
func Percent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// Rate renders an unsigned percentage value.
func Rate(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
