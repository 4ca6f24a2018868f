// backend-go/internal/wrapped/format.go
package wrapped

import (
	"fmt"
	"math"
	"strings"
)

// Display formatting for CLI output. The API returns raw numbers; only the
// terminal summary wants human-friendly strings.

// FormatCurrency renders a whole-unit amount with thousands separators and a
// currency code, e.g. "1,234 USD".
func FormatCurrency(amount float64, currency string) string {
	return fmt.Sprintf("%s %s", FormatNumber(amount), currency)
}

// FormatNumber rounds to the nearest integer and inserts comma separators.
func FormatNumber(n float64) string {
	rounded := int64(math.Round(n))
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}

	digits := fmt.Sprintf("%d", rounded)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups[0:]...)
	return sign + strings.Join(groups, ",")
}

// FormatPercent renders a rate with one decimal place.
func FormatPercent(n float64) string {
	return fmt.Sprintf("%.1f%%", n)
}
