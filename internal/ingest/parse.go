// backend-go/internal/ingest/parse.go
package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// DetectFileType decides which export schema a header set belongs to.
// Matching is case-insensitive on trimmed header names; the first predicate
// that matches wins.
func DetectFileType(headers []string) domain.FileType {
	set := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	has := func(name string) bool {
		_, ok := set[name]
		return ok
	}

	// Retail order history: "Product Name" plus a line-amount column
	if has("product name") && (has("shipment item subtotal") || has("total owed")) {
		return domain.FileTypeRetailOrders
	}

	if has("amountrefunded") && has("refundcompletiondate") {
		return domain.FileTypeRefundPayments
	}

	if has("ourprice") && has("publisher") {
		return domain.FileTypeDigitalItems
	}

	return domain.FileTypeUnknown
}

// dateLayouts covers the formats seen across export generations. The US
// slash format is handled separately because its day/month fields are not
// zero padded consistently.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
}

var usDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})`)

// ParseOrderDate parses a date string from an export row. Returns false when
// no format matches; callers drop the row rather than keep a sentinel date.
func ParseOrderDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	// US format MM/DD/YYYY, optionally followed by a time we ignore
	if m := usDatePattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

var moneyStrip = regexp.MustCompile(`[^0-9.\-]`)

// ParseMoney converts a formatted currency string ("$1,234.56", "EUR 12.00")
// to a float. Empty or unparseable input degrades to 0; this is lossy for
// exotic locale formats and accepted as such.
func ParseMoney(s string) float64 {
	if s == "" {
		return 0
	}

	cleaned := moneyStrip.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ExtractCurrency probes the known currency header spellings in order and
// returns the first non-empty value uppercased, defaulting to USD.
func ExtractCurrency(row map[string]string) string {
	for _, key := range config.CurrencyHeaderCandidates {
		if v := strings.TrimSpace(row[key]); v != "" {
			return strings.ToUpper(v)
		}
	}
	return config.DefaultCurrency
}

// ParseQuantity parses an item quantity, defaulting to 1 on bad input so a
// present-but-garbled quantity never zeroes out an order line.
func ParseQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 1 {
		return 1
	}
	return q
}
