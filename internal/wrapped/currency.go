// backend-go/internal/wrapped/currency.go
package wrapped

import (
	"sort"

	"github.com/andresuchdata/orderwrapped/backend-go/internal/config"
	"github.com/andresuchdata/orderwrapped/backend-go/internal/domain"
)

// currencyOf treats an unset currency as USD so tallies never split an order
// set between "" and "USD".
func currencyOf(order domain.Order) string {
	if order.Currency == "" {
		return config.DefaultCurrency
	}
	return order.Currency
}

// tallyCurrencies counts lines and sums amounts per currency in first-seen
// order. Insertion order is kept explicitly so tie-breaks stay deterministic
// across runs; Go map iteration would not be.
func tallyCurrencies(orders []domain.Order) []domain.CurrencyAmount {
	index := make(map[string]int)
	var tally []domain.CurrencyAmount

	for _, order := range orders {
		code := currencyOf(order)
		i, ok := index[code]
		if !ok {
			i = len(tally)
			index[code] = i
			tally = append(tally, domain.CurrencyAmount{Currency: code})
		}
		tally[i].OrderCount++
		tally[i].Amount += order.TotalOwed
	}

	return tally
}

// PrimaryCurrency returns the currency with the most order lines. On a tie
// the first currency seen with the max count wins (stable first-occurrence
// rule). USD for an empty set.
func PrimaryCurrency(orders []domain.Order) string {
	tally := tallyCurrencies(orders)
	if len(tally) == 0 {
		return config.DefaultCurrency
	}

	primary := tally[0]
	for _, entry := range tally[1:] {
		if entry.OrderCount > primary.OrderCount {
			primary = entry
		}
	}
	return primary.Currency
}

// BreakdownCurrencies returns the per-currency amounts and line counts for an
// order set, sorted by line count descending. The sort is stable so equal
// counts keep first-seen order and the first entry always matches
// PrimaryCurrency.
func BreakdownCurrencies(orders []domain.Order) []domain.CurrencyAmount {
	tally := tallyCurrencies(orders)
	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].OrderCount > tally[j].OrderCount
	})
	return tally
}

// filterCurrency keeps only orders in the given currency. When currencies are
// mixed, every monetary aggregate runs over this subset; summing euros into a
// dollar total is never acceptable.
func filterCurrency(orders []domain.Order, currency string) []domain.Order {
	filtered := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		if currencyOf(order) == currency {
			filtered = append(filtered, order)
		}
	}
	return filtered
}

// filterRefundCurrency is the refund counterpart of filterCurrency, keeping
// net-spend arithmetic inside one currency.
func filterRefundCurrency(refunds []domain.Refund, currency string) []domain.Refund {
	filtered := make([]domain.Refund, 0, len(refunds))
	for _, refund := range refunds {
		code := refund.Currency
		if code == "" {
			code = config.DefaultCurrency
		}
		if code == currency {
			filtered = append(filtered, refund)
		}
	}
	return filtered
}
